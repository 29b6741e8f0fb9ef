package aggregates

type Domain struct {
	SaasCustomerID   *uint64
	SaasCustomerName *string
}
