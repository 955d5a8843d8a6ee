// internal/workers/communication/send-recommendation-summary/templates.go
package sendrecommendationsummary

import (
	"bytes"
	"strings"
	"text/template"

	"card-advisor-workers/internal/models"
)

const emailSubject = "Your credit card recommendations"

var emailBody = template.Must(template.New("email").Funcs(funcs).Parse(
	`Hi {{if .UserName}}{{.UserName}}{{else}}there{{end}},
{{if .Recommendations}}
Here are the cards that best match your spending:
{{range $i, $r := .Recommendations}}
{{inc $i}}. {{$r.Name}}{{if $r.Issuer}} ({{$r.Issuer}}){{end}}
   Match score: {{$r.Score}}
   Annual fee: ₹{{$r.AnnualFee}}
   {{$r.RewardSimulation}}
{{- range $r.Reasons}}
   - {{.}}
{{- end}}
{{- if $r.ApplyLink}}
   Apply: {{$r.ApplyLink}}
{{- end}}
{{end}}{{else}}
We could not find a new card for you right now. Your current cards already cover the best matches in our catalog.
{{end}}`))

var smsBody = template.Must(template.New("sms").Parse(
	`{{with index .Recommendations 0}}Top card for you: {{.Name}}. {{.RewardSimulation}}.{{end}}` +
		`{{if gt (len .Recommendations) 1}} {{len .Recommendations}} matches in your email.{{end}}`))

var funcs = template.FuncMap{"inc": func(i int) int { return i + 1 }}

type summaryData struct {
	UserName        string
	Recommendations []models.Recommendation
}

func renderEmail(data summaryData) (string, error) {
	var buf bytes.Buffer
	if err := emailBody.Execute(&buf, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()) + "\n", nil
}

// renderSMS needs at least one recommendation.
func renderSMS(data summaryData) (string, error) {
	var buf bytes.Buffer
	if err := smsBody.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
