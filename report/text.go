package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/wtsi-npg/simple-stats/regression"
)

const (
	summaryWidth = 78
	summaryTitle = "OLS Regression Results"
)

var coefficientHeader = []string{"", "coef", "std err", "t", "P>|t|", "[0.025", "0.975]"}

// statRow is one line of the two column statistics blocks.
type statRow struct {
	leftLabel, leftValue   string
	rightLabel, rightValue string
}

// WriteText writes the fit summary followed by one line per prediction:
//
//	Prediction for <label> <value>, back-transform <base^value>
func WriteText(w io.Writer, r Report) error {
	if err := WriteSummary(w, r.Fit); err != nil {
		return err
	}
	for _, p := range r.Predictions {
		if _, err := fmt.Fprintf(
			w,
			"Prediction for %s %s, back-transform %s\n",
			p.Label, FormatFloat(p.Value), FormatFloat(p.BackTransform),
		); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary writes a human readable summary of fit: model statistics, the
// coefficient table and residual diagnostics.
func WriteSummary(w io.Writer, fit regression.Fit) error {
	s := fit.Summary
	var b strings.Builder

	pad := (summaryWidth - len(summaryTitle)) / 2
	fmt.Fprintf(&b, "%s%s\n", strings.Repeat(" ", pad), summaryTitle)
	b.WriteString(rule("="))
	writeStatRows(&b, []statRow{
		{"Dep. Variable:", "y", "R-squared:", formatStat(s.RSquared)},
		{"Model:", "OLS", "Adj. R-squared:", formatStat(s.AdjRSquared)},
		{"Method:", "Least Squares", "F-statistic:", formatStat(s.FStatistic)},
		{"Solver:", s.Solver, "Prob (F-statistic):", formatStat(s.FPValue)},
		{"No. Observations:", fmt.Sprint(s.NumObservations), "Log-Likelihood:", formatStat(s.LogLikelihood)},
		{"Df Residuals:", fmt.Sprint(s.DFResidual), "AIC:", formatStat(s.AIC)},
		{"Df Model:", fmt.Sprint(s.DFModel), "BIC:", formatStat(s.BIC)},
		{"Residual Std. Err.:", formatStat(s.ResidualStdErr), "", ""},
	})
	b.WriteString(rule("="))

	table := tablewriter.NewWriter(&b)
	table.SetHeader(coefficientHeader)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetCenterSeparator(" ")
	table.SetColumnSeparator(" ")
	table.SetRowSeparator("-")
	for _, c := range s.Coefficients {
		table.Append([]string{
			c.Name,
			formatFixed(c.Estimate, 4),
			formatFixed(c.StdErr, 4),
			formatFixed(c.TValue, 3),
			formatFixed(c.PValue, 3),
			formatFixed(c.CILower, 3),
			formatFixed(c.CIUpper, 3),
		})
	}
	table.Render()

	b.WriteString(rule("="))
	writeStatRows(&b, []statRow{
		{"Omnibus:", formatStat(s.Omnibus), "Durbin-Watson:", formatStat(s.DurbinWatson)},
		{"Prob(Omnibus):", formatStat(s.OmnibusPValue), "Jarque-Bera (JB):", formatStat(s.JarqueBera)},
		{"Skew:", formatStat(s.Skew), "Prob(JB):", formatStat(s.JarqueBeraPValue)},
		{"Kurtosis:", formatStat(s.Kurtosis), "Cond. No.:", formatStat(s.ConditionNumber)},
	})
	b.WriteString(rule("="))

	_, err := io.WriteString(w, b.String())
	return err
}

func writeStatRows(b *strings.Builder, rows []statRow) {
	for _, r := range rows {
		line := fmt.Sprintf("%-20s%18s   %-20s%17s", r.leftLabel, r.leftValue, r.rightLabel, r.rightValue)
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
}

func rule(char string) string {
	return strings.Repeat(char, summaryWidth) + "\n"
}
