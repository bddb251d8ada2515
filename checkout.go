package fakeapp

const (
	FlowCheckoutV2     = "v2"
	FlowCheckoutLegacy = "legacy"
)

// CheckoutDispatcher picks the checkout flow from checkout_v2. The context is
// the cart total.
var CheckoutDispatcher = Dispatcher[float64]{
	FlagKey: FlagCheckoutV2,
	Enhanced: Strategy[float64]{
		Name: FlowCheckoutV2,
		Run: func(total float64) map[string]any {
			return map[string]any{
				"amount":   total,
				"features": []string{"express_checkout", "real_time_validation", "saved_cards"},
			}
		},
	},
	Baseline: Strategy[float64]{
		Name: FlowCheckoutLegacy,
		Run: func(total float64) map[string]any {
			return map[string]any{
				"amount":   total,
				"features": []string{"basic_checkout"},
			}
		},
	},
}

// ProcessCheckout runs the checkout flow selected by checkout_v2.
func ProcessCheckout(flags FlagProvider, cartTotal float64) (DispatchResult, error) {
	return CheckoutDispatcher.Dispatch(flags, cartTotal)
}

// Eligibility is the outcome of ValidateCheckoutEligibility.
type Eligibility struct {
	Eligible bool `json:"eligible"`
	// Enhanced is set when checkout_v2 switched on the extra fraud checks.
	Enhanced bool `json:"enhanced"`
}

// ValidateCheckoutEligibility rejects an empty user id. Any other user is
// eligible; checkout_v2 only decides whether enhanced validation ran.
func ValidateCheckoutEligibility(flags FlagProvider, userID string) (Eligibility, error) {
	if userID == "" {
		return Eligibility{}, nil
	}
	enhanced, err := flags.IsEnabled(FlagCheckoutV2)
	if err != nil {
		return Eligibility{}, err
	}
	return Eligibility{Eligible: true, Enhanced: enhanced}, nil
}
