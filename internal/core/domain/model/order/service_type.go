package order

import (
	"fmt"

	"tailoring/internal/pkg/errs"
)

// ServiceType names the kind of tailoring work an order requests.
// The vocabulary is fixed; placement rejects anything outside it.
type ServiceType string

const (
	// ServiceStitching is made-to-measure garment construction.
	ServiceStitching ServiceType = "stitching"

	// ServiceAlteration is resizing or reshaping an existing garment.
	ServiceAlteration ServiceType = "alteration"

	// ServiceRepair is mending damage on an existing garment.
	ServiceRepair ServiceType = "repair"

	// ServiceEmbroidery is decorative stitching work.
	ServiceEmbroidery ServiceType = "embroidery"
)

func getValidServiceTypes() map[ServiceType]struct{} {
	return map[ServiceType]struct{}{
		ServiceStitching:  {},
		ServiceAlteration: {},
		ServiceRepair:     {},
		ServiceEmbroidery: {},
	}
}

// NewServiceType validates a raw string against the service vocabulary.
func NewServiceType(s string) (ServiceType, error) {
	st := ServiceType(s)
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

// Validate checks that the ServiceType belongs to the fixed vocabulary.
func (s ServiceType) Validate() error {
	if _, ok := getValidServiceTypes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"service type is invalid",
			fmt.Errorf("%q is not a valid service type", string(s)),
		)
	}
	return nil
}

// String returns the vocabulary entry as a plain string.
func (s ServiceType) String() string {
	return string(s)
}
