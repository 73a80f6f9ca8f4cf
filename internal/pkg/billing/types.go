package billing

// CallbackStatusSuccess is the gateway's reported status for a captured
// payment; everything else is treated as a failure report.
const CallbackStatusSuccess = "success"

// CallbackInput is the parsed inbound payment notification.
type CallbackInput struct {
	MerchantOrderID string
	Status          string
	TotalAmount     string
	Hash            string
}
