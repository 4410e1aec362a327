// Package constants defines shared provider identifiers used in configuration.
package constants

const (
	// NotifierProviderSMTP delivers mail through an SMTP relay.
	NotifierProviderSMTP = "smtp"
	// NotifierProviderWebhook posts mail payloads to an HTTP endpoint,
	// simulating a mail provider for local development.
	NotifierProviderWebhook = "webhook"

	// PaymentProviderStripe charges through the Stripe REST API.
	PaymentProviderStripe = "stripe"
)
