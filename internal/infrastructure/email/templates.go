package email

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
)

type templateData struct {
	AppName string
	Name    string
	Link    string
	Year    int
}

type emailTemplate struct {
	html *template.Template
	text *texttemplate.Template
}

const layoutHTML = `<!DOCTYPE html>
<html>
  <head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
      <h1 style="color: white; margin: 0;">{{.AppName}}</h1>
    </div>
    <div style="background: #f5f5f5; padding: 30px; border: 1px solid #ddd; border-top: none; border-radius: 0 0 10px 10px;">
      {{template "content" .}}
      <p style="color: #999; font-size: 14px; margin-top: 30px;">
        Or copy and paste this link into your browser:<br>
        <a href="{{.Link}}" style="color: #667eea; word-break: break-all;">{{.Link}}</a>
      </p>
    </div>
    <div style="text-align: center; margin-top: 20px; color: #999; font-size: 12px;">
      <p>&copy; {{.Year}} {{.AppName}}. All rights reserved.</p>
    </div>
  </body>
</html>`

const buttonHTML = `<div style="text-align: center; margin: 30px 0;">
  <a href="{{.Link}}" style="background: #667eea; color: white; padding: 15px 40px; text-decoration: none; border-radius: 5px; display: inline-block; font-weight: bold; font-size: 16px;">{{template "label"}}</a>
</div>`

var verificationTemplate = mustTemplate(`
{{define "label"}}Verify Email Address{{end}}
{{define "content"}}
<h2 style="color: #333; margin-top: 0;">Welcome to {{.AppName}}, {{.Name}}!</h2>
<p style="color: #666; font-size: 16px;">Thank you for signing up! Please verify your email address to complete your registration and start ordering.</p>
`+buttonHTML+`
<p style="color: #999; font-size: 14px;">This link will expire in 24 hours. If you didn't create an account with {{.AppName}}, please ignore this email.</p>
{{end}}`, `Welcome to {{.AppName}}, {{.Name}}!

Please verify your email address to complete your registration:
{{.Link}}

This link will expire in 24 hours. If you didn't create an account with {{.AppName}}, please ignore this email.
`)

var passwordResetTemplate = mustTemplate(`
{{define "label"}}Reset Password{{end}}
{{define "content"}}
<h2 style="color: #333; margin-top: 0;">Password Reset Request</h2>
<p style="color: #666; font-size: 16px;">Hello {{.Name}},<br><br>We received a request to reset your password. Click the button below to create a new password.</p>
`+buttonHTML+`
<p style="color: #999; font-size: 14px;">This link will expire in 24 hours. If you didn't request a password reset, please ignore this email.</p>
{{end}}`, `Hello {{.Name}},

We received a request to reset your {{.AppName}} password. Open the link below to choose a new one:
{{.Link}}

This link will expire in 24 hours. If you didn't request a password reset, please ignore this email.
`)

func mustTemplate(content, text string) emailTemplate {
	return emailTemplate{
		html: template.Must(template.Must(template.New("layout").Parse(layoutHTML)).Parse(content)),
		text: texttemplate.Must(texttemplate.New("text").Parse(text)),
	}
}

func render(t emailTemplate, data templateData) (*Message, error) {
	var htmlBuf, textBuf bytes.Buffer
	if err := t.html.ExecuteTemplate(&htmlBuf, "layout", data); err != nil {
		return nil, fmt.Errorf("failed to render html body: %w", err)
	}
	if err := t.text.Execute(&textBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render text body: %w", err)
	}
	return &Message{HTML: htmlBuf.String(), Text: textBuf.String()}, nil
}
