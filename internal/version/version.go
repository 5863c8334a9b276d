// ABOUTME: Version constants for Padbank
// ABOUTME: Product identity reported by the control surface and mDNS
package version

const (
	// Product is the product name.
	Product = "Padbank"

	// Manufacturer is the manufacturer name.
	Manufacturer = "Padbank Audio"

	// Version is the software version.
	Version = "0.1.0"
)
