package notification

import (
	"bytes"
	"html/template"
)

const invitationSubject = "Invitation to Join DriveBuddy"

var invitationTemplate = template.Must(template.New("invitation").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <style>
    body { font-family: Arial, sans-serif; margin: 0; padding: 0; background-color: #f9f9f9; }
    .container { max-width: 600px; margin: 20px auto; background: #ffffff; padding: 40px; border-radius: 8px; border: 1px solid rgba(0,0,0,0.1); }
    .code { display: inline-block; background-color: #f0f0f0; border-radius: 8px; padding: 10px 20px; font-weight: bold; font-size: 2rem; letter-spacing: 5px; }
    .footer { background-color: #f0f0f0; padding: 0.5rem; text-align: center; font-size: 0.8rem; color: #666; }
  </style>
</head>
<body>
  <div class="container">
    <p>Hi {{.Name}},</p>
    <p>You have been invited to join DriveBuddy. Download the app and sign up with this invitation code:</p>
    <p class="code">{{.Code}}</p>
    <p>If you were not expecting this invitation you can ignore this email.</p>
    <div class="footer">DriveBuddy Team</div>
  </div>
</body>
</html>
`))

func renderInvitation(name, code string) (string, error) {
	var buf bytes.Buffer
	if err := invitationTemplate.Execute(&buf, struct{ Name, Code string }{name, code}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
