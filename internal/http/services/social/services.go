package social

// Services aggregates all social login services.
type Services struct {
	Start        StartService
	Callback     CallbackService
	Provisioning ProvisioningService
}
