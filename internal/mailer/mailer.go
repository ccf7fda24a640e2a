package mailer

const OrderConfirmationTemplate = "order_confirmation.tmpl"

type Mailer interface {
	Send(recipient, templateFile string, data any) error
}
