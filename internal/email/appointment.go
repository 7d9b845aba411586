package email

import (
	"bytes"
	"fmt"
	"text/template"

	"goldenview/realty/internal/models"
)

// Notification kinds sent to clients about their viewing appointments.
const (
	KindAppointmentReceived  = "appointment_received"
	KindAppointmentConfirmed = "appointment_confirmed"
	KindAppointmentCancelled = "appointment_cancelled"
)

type appointmentTemplate struct {
	kind    string
	subject string
	body    *template.Template
}

var appointmentTemplates = map[models.AppointmentStatus]appointmentTemplate{
	models.AppointmentPending: {
		kind:    KindAppointmentReceived,
		subject: "We received your viewing request for {{.PropertyTitle}}",
		body: template.Must(template.New("received").Parse(`Hello {{.ClientName}},

Thank you for your interest in {{.PropertyTitle}}. We have received your request
to view it on {{.Date}} ({{.TimeSlot}}). An agent will confirm the appointment shortly.

{{.AppName}}
`)),
	},
	models.AppointmentConfirmed: {
		kind:    KindAppointmentConfirmed,
		subject: "Your viewing of {{.PropertyTitle}} is confirmed",
		body: template.Must(template.New("confirmed").Parse(`Hello {{.ClientName}},

Your viewing of {{.PropertyTitle}} is confirmed for {{.Date}} ({{.TimeSlot}}).
{{- if .AgentNotes}}

Note from your agent: {{.AgentNotes}}
{{- end}}

{{.AppName}}
`)),
	},
	models.AppointmentCancelled: {
		kind:    KindAppointmentCancelled,
		subject: "Your viewing of {{.PropertyTitle}} was cancelled",
		body: template.Must(template.New("cancelled").Parse(`Hello {{.ClientName}},

Unfortunately your viewing of {{.PropertyTitle}} on {{.Date}} ({{.TimeSlot}}) has been cancelled.
{{- if .AgentNotes}}

Note from your agent: {{.AgentNotes}}
{{- end}}

{{.AppName}}
`)),
	},
}

type appointmentView struct {
	AppName       string
	ClientName    string
	PropertyTitle string
	Date          string
	TimeSlot      string
	AgentNotes    string
}

// NotifiesClient reports whether the client is emailed when an appointment reaches status.
func NotifiesClient(status models.AppointmentStatus) bool {
	_, ok := appointmentTemplates[status]
	return ok
}

// AppointmentMessage builds the client notification for the appointment's current status.
func AppointmentMessage(appName string, a models.Appointment) (Message, error) {
	tmpl, ok := appointmentTemplates[a.Status]
	if !ok {
		return Message{}, fmt.Errorf("no notification for appointment status %q", a.Status)
	}
	view := appointmentView{
		AppName:       appName,
		ClientName:    a.ClientName,
		PropertyTitle: a.PropertyTitle,
		Date:          a.Date.Format("Monday, 2 January 2006"),
		TimeSlot:      a.TimeSlot,
		AgentNotes:    a.AgentNotes,
	}

	subject, err := template.New("subject").Parse(tmpl.subject)
	if err != nil {
		return Message{}, err
	}
	var subj, body bytes.Buffer
	if err := subject.Execute(&subj, view); err != nil {
		return Message{}, fmt.Errorf("render subject: %w", err)
	}
	if err := tmpl.body.Execute(&body, view); err != nil {
		return Message{}, fmt.Errorf("render body: %w", err)
	}
	return Message{
		To:      []string{a.ClientEmail},
		Subject: subj.String(),
		Body:    body.String(),
		Kind:    tmpl.kind,
	}, nil
}
