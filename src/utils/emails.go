package utils

import (
	"bytes"
	"fmt"
	"html/template"
)

const (
	BookingCreatedSubject = "Booking request made successfully!"
	PaymentLinkSubject    = "Payment Link to confirm your Booking"
	EnquiryReplySubject   = "Reply to your enquiry"
)

var bookingCreatedTemplate = template.Must(template.New("booking_created").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
	<h2>Hi {{.Name}},</h2>
	<p>{{.Message}}</p>
	<table cellpadding="6" style="border-collapse: collapse;">
		<tr><td><strong>Booking</strong></td><td>{{.BookingID}}</td></tr>
		<tr><td><strong>Package</strong></td><td>{{.PackageName}}</td></tr>
		{{- if .BookingDate}}
		<tr><td><strong>Date</strong></td><td>{{.BookingDate}}</td></tr>
		{{- end}}
		{{- if .Location}}
		<tr><td><strong>Location</strong></td><td>{{.Location}}</td></tr>
		{{- end}}
		{{- if .Attendees}}
		<tr><td><strong>Attendees</strong></td><td>{{.Attendees}}</td></tr>
		{{- end}}
		{{- if .Amount}}
		<tr><td><strong>Total</strong></td><td>{{.Symbol}}{{.Amount}}</td></tr>
		{{- end}}
		<tr><td><strong>Status</strong></td><td>{{.Status}}</td></tr>
	</table>
	<p>We will contact you shortly with the next steps.</p>
</body>
</html>`))

var paymentLinkTemplate = template.Must(template.New("payment_link").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
	<h2>Hi {{.Name}},</h2>
	<p>Your booking is ready to be confirmed. The amount due is <strong>{{.Symbol}}{{.Amount}}</strong>.</p>
	<p><a href="{{.Link}}" style="background: #0b5ed7; color: #fff; padding: 10px 18px; text-decoration: none; border-radius: 4px;">Pay now</a></p>
	<p>If the button does not work, open this link: {{.Link}}</p>
</body>
</html>`))

var enquiryReplyTemplate = template.Must(template.New("enquiry_reply").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
	<h2>Hi {{.Name}},</h2>
	<p>Thank you for reaching out. Here is our reply:</p>
	<blockquote style="border-left: 3px solid #ccc; margin: 0; padding-left: 12px;">{{.Reply}}</blockquote>
	<p style="color: #666;">Your message: {{.Message}}</p>
</body>
</html>`))

type BookingCreatedEmail struct {
	Name        string
	Message     string
	BookingID   string
	PackageName string
	BookingDate string
	Location    string
	Attendees   string
	Status      string
	Symbol      string
	Amount      string
}

type PaymentLinkEmail struct {
	Name   string
	Amount string
	Symbol string
	Link   string
}

type EnquiryReplyEmail struct {
	Name    string
	Message string
	Reply   string
}

// FormatAmount prints whole amounts without decimals and others with two.
func FormatAmount(amount *float64) string {
	if amount == nil {
		return ""
	}
	if *amount == float64(int64(*amount)) {
		return fmt.Sprintf("%d", int64(*amount))
	}
	return fmt.Sprintf("%.2f", *amount)
}

func RenderBookingCreatedEmail(data BookingCreatedEmail) (string, error) {
	var buf bytes.Buffer
	if err := bookingCreatedTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func RenderPaymentLinkEmail(data PaymentLinkEmail) (string, error) {
	var buf bytes.Buffer
	if err := paymentLinkTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func RenderEnquiryReplyEmail(data EnquiryReplyEmail) (string, error) {
	var buf bytes.Buffer
	if err := enquiryReplyTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
