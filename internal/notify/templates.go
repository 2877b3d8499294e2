package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/unidesk/consult-scheduler/internal/models"
)

// EmailContent is the rendered mail for one notification.
type EmailContent struct {
	Subject  string
	HTMLBody string
	TextBody string
}

// templateContext is what every mail template sees.
type templateContext struct {
	UserName      string
	Title         string
	ProfessorName string
	StudentName   string
	Date          string
	Time          string
	Duration      int
	Location      string
	MeetingLink   string
	Reason        string
	SiteName      string
	SiteURL       string
}

type messageTemplate struct {
	subject string
	html    string
	text    string
}

// One entry per message type. Rendering resolves through this map only;
// there is no dynamic template lookup.
var messageTemplates = map[string]messageTemplate{
	models.MessageBookingCreated: {
		subject: "New Consultation Booking",
		html: `<p>Hello {{.UserName}},</p>
<p>A consultation <strong>{{.Title}}</strong> between {{.StudentName}} and {{.ProfessorName}} has been requested for {{.Date}} at {{.Time}} ({{.Duration}} minutes).</p>
<p>It is pending confirmation by the professor.</p>
<p>{{.SiteName}} - {{.SiteURL}}</p>`,
		text: `Hello {{.UserName}},

A consultation "{{.Title}}" between {{.StudentName}} and {{.ProfessorName}} has been requested for {{.Date}} at {{.Time}} ({{.Duration}} minutes).
It is pending confirmation by the professor.

{{.SiteName}} - {{.SiteURL}}`,
	},
	models.MessageBookingConfirmed: {
		subject: "Consultation Confirmed",
		html: `<p>Hello {{.UserName}},</p>
<p>Your consultation <strong>{{.Title}}</strong> with {{.ProfessorName}} on {{.Date}} at {{.Time}} has been confirmed.</p>
{{if .Location}}<p>Location: {{.Location}}</p>{{end}}
{{if .MeetingLink}}<p>Meeting link: <a href="{{.MeetingLink}}">{{.MeetingLink}}</a></p>{{end}}
<p>{{.SiteName}} - {{.SiteURL}}</p>`,
		text: `Hello {{.UserName}},

Your consultation "{{.Title}}" with {{.ProfessorName}} on {{.Date}} at {{.Time}} has been confirmed.
{{if .Location}}Location: {{.Location}}
{{end}}{{if .MeetingLink}}Meeting link: {{.MeetingLink}}
{{end}}
{{.SiteName}} - {{.SiteURL}}`,
	},
	models.MessageReminder24h: {
		subject: "Reminder: Consultation Tomorrow",
		html: `<p>Hello {{.UserName}},</p>
<p>This is a reminder that the consultation <strong>{{.Title}}</strong> is scheduled for tomorrow, {{.Date}} at {{.Time}}.</p>
{{if .Location}}<p>Location: {{.Location}}</p>{{end}}
<p>{{.SiteName}} - {{.SiteURL}}</p>`,
		text: `Hello {{.UserName}},

This is a reminder that the consultation "{{.Title}}" is scheduled for tomorrow, {{.Date}} at {{.Time}}.
{{if .Location}}Location: {{.Location}}
{{end}}
{{.SiteName}} - {{.SiteURL}}`,
	},
	models.MessageCancelled: {
		subject: "Consultation Cancelled",
		html: `<p>Hello {{.UserName}},</p>
<p>The consultation <strong>{{.Title}}</strong> scheduled for {{.Date}} at {{.Time}} has been cancelled.</p>
{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
<p>{{.SiteName}} - {{.SiteURL}}</p>`,
		text: `Hello {{.UserName}},

The consultation "{{.Title}}" scheduled for {{.Date}} at {{.Time}} has been cancelled.
{{if .Reason}}Reason: {{.Reason}}
{{end}}
{{.SiteName}} - {{.SiteURL}}`,
	},
	models.MessageRescheduled: {
		subject: "Consultation Rescheduled",
		html: `<p>Hello {{.UserName}},</p>
<p>The consultation <strong>{{.Title}}</strong> has been moved to {{.Date}} at {{.Time}} ({{.Duration}} minutes) and is pending re-confirmation.</p>
<p>{{.SiteName}} - {{.SiteURL}}</p>`,
		text: `Hello {{.UserName}},

The consultation "{{.Title}}" has been moved to {{.Date}} at {{.Time}} ({{.Duration}} minutes) and is pending re-confirmation.

{{.SiteName}} - {{.SiteURL}}`,
	},
}

// Render produces the mail for a notification. The notification must
// have its User and Consultation loaded.
func Render(n *models.Notification, reason, siteName, siteURL string) (*EmailContent, error) {
	tpl, ok := messageTemplates[n.MessageType]
	if !ok {
		return nil, fmt.Errorf("no template for message type %q", n.MessageType)
	}

	ctx := templateContext{
		UserName: n.User.Name,
		Reason:   reason,
		SiteName: siteName,
		SiteURL:  siteURL,
	}

	if n.Consultation != nil {
		cons := n.Consultation
		ctx.Title = cons.Title
		ctx.ProfessorName = cons.Professor.Name
		ctx.StudentName = cons.Student.Name
		ctx.Date = cons.ScheduledDate
		ctx.Time = cons.ScheduledTime
		ctx.Duration = cons.Duration
		ctx.Location = cons.Location
		ctx.MeetingLink = cons.MeetingLink
	}

	htmlT, err := htmltemplate.New("html").Parse(tpl.html)
	if err != nil {
		return nil, err
	}
	textT, err := texttemplate.New("text").Parse(tpl.text)
	if err != nil {
		return nil, err
	}

	var htmlBuf, textBuf bytes.Buffer
	if err := htmlT.Execute(&htmlBuf, ctx); err != nil {
		return nil, err
	}
	if err := textT.Execute(&textBuf, ctx); err != nil {
		return nil, err
	}

	return &EmailContent{
		Subject:  tpl.subject,
		HTMLBody: htmlBuf.String(),
		TextBody: textBuf.String(),
	}, nil
}
