// cmd/advisor/diagnose.go
package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"business-advisor/internal/diagnostic"
)

var errInputEnded = stderrors.New("input ended before the diagnostic was complete")

func (c *cli) newDiagnoseCommand() *cobra.Command {
	var answers map[string]int

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Score exit readiness, interactively or from --answer flags",
		Long: `Walks through the readiness questionnaire one question at a time.
Enter the option number to answer, "b" to go back, or "q" to quit.
Pass every answer with --answer to score without prompting.`,
		Example: `  advisor diagnose
  advisor diagnose --answer marketPosition=4 --answer growthRate=3 ...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := diagnostic.DefaultCatalog()
			if len(answers) > 0 {
				return c.scoreAnswers(cmd.OutOrStdout(), catalog, answers)
			}
			return c.runSession(cmd.InOrStdin(), cmd.OutOrStdout(), catalog)
		},
	}

	cmd.Flags().StringToIntVar(&answers, "answer", nil, "question id and value, e.g. cashFlow=4 (repeatable)")
	return cmd
}

func (c *cli) scoreAnswers(out io.Writer, catalog diagnostic.Catalog, answers map[string]int) error {
	scores, err := diagnostic.ScoreAnswers(answers, catalog)
	if err != nil {
		return err
	}
	recs, err := diagnostic.Recommend(scores)
	if err != nil {
		return err
	}
	return c.printResults(out, catalog, &diagnostic.Results{Scores: scores, Recommendations: recs})
}

// runSession drives a diagnostic session from line-oriented input until the
// respondent finishes without retaking, quits, or input runs out.
func (c *cli) runSession(in io.Reader, out io.Writer, catalog diagnostic.Catalog) error {
	session, err := diagnostic.NewSession(catalog)
	if err != nil {
		return err
	}
	sessionID := uuid.New().String()
	log := c.log.WithFields(map[string]interface{}{"session_id": sessionID})
	log.Debug("diagnostic session started", nil)

	scanner := bufio.NewScanner(in)
	for {
		for !session.State().Complete {
			q := session.Current()
			printQuestion(out, q, session.State().Index, session.TotalQuestions())

			if !scanner.Scan() {
				return errInputEnded
			}
			input := strings.ToLower(strings.TrimSpace(scanner.Text()))

			switch input {
			case "q", "quit":
				fmt.Fprintln(out, mutedText("Diagnostic abandoned."))
				return nil
			case "b", "back":
				if !session.GoBack() {
					fmt.Fprintln(out, warnText("Already at the first question."))
				}
				continue
			}

			value, err := optionValue(q.Question, input)
			if err != nil {
				fmt.Fprintln(out, warnText(err.Error()))
				continue
			}
			if err := session.Answer(q.ID, value); err != nil {
				fmt.Fprintln(out, warnText(err.Error()))
				continue
			}
			log.Debug("answer recorded", map[string]interface{}{"question": q.ID, "value": value})
		}

		results, err := session.Results()
		if err != nil {
			return err
		}
		if err := c.printResults(out, catalog, results); err != nil {
			return err
		}
		if c.jsonOutput {
			return nil
		}

		fmt.Fprint(out, "\nRetake the diagnostic? [y/N] ")
		if !scanner.Scan() || !strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
			log.Debug("diagnostic session finished", map[string]interface{}{"overall": results.Scores.Overall.Percentage})
			return nil
		}
		session.Retake()
		log.Debug("diagnostic session retaken", nil)
	}
}

func printQuestion(out io.Writer, q diagnostic.IndexedQuestion, index, total int) {
	fmt.Fprintf(out, "\n%s %s\n", headingText(q.SectionTitle), mutedText(fmt.Sprintf("(%d/%d)", index+1, total)))
	fmt.Fprintln(out, q.Text)
	for i, o := range q.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, o.Text)
	}
	fmt.Fprint(out, "> ")
}

// optionValue maps the displayed option number to that option's value.
func optionValue(q diagnostic.Question, input string) (int, error) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(q.Options) {
		return 0, fmt.Errorf("enter a number from 1 to %d, b to go back, or q to quit", len(q.Options))
	}
	return q.Options[n-1].Value, nil
}

func (c *cli) printResults(out io.Writer, catalog diagnostic.Catalog, r *diagnostic.Results) error {
	if c.jsonOutput {
		return writeJSON(out, struct {
			*diagnostic.Results
			ExitReady bool `json:"exitReady"`
		}{r, diagnostic.ExitReady(r.Scores)})
	}

	fmt.Fprintf(out, "\n%s\n\n", headingText("Exit readiness results"))
	for _, s := range catalog.Sections {
		score := r.Scores.Sections[s.ID]
		fmt.Fprintf(out, "  %-24s %3d%%  %s\n", s.Title, score.Percentage, mutedText(diagnostic.Band(score.Percentage)))
	}
	fmt.Fprintf(out, "  %-24s %s\n\n", "Overall", valueText(fmt.Sprintf("%3d%%", r.Scores.Overall.Percentage)))

	fmt.Fprintln(out, headingText("Recommendations"))
	for _, rec := range r.Recommendations {
		fmt.Fprintf(out, "  [%s] %s\n", priorityText(rec.Priority), rec.Text)
	}
	return nil
}

func priorityText(p diagnostic.Priority) string {
	switch p {
	case diagnostic.PriorityHigh:
		return errorText(string(p))
	case diagnostic.PriorityMedium:
		return warnText(string(p))
	default:
		return valueText(string(p))
	}
}
