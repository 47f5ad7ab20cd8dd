package store

import (
	"fmt"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

// Vendor retrieves a vendor by GUID.
func (t *Tx) Vendor(guid string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := t.get(BucketVendors, guid, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Vendors retrieves every vendor.
func (t *Tx) Vendors() ([]*models.Vendor, error) {
	return list[models.Vendor](t, BucketVendors)
}

// PutVendor creates or replaces a vendor.
func (t *Tx) PutVendor(vendor *models.Vendor) error {
	if vendor.GUID == "" {
		return fmt.Errorf("vendor has no GUID")
	}
	if err := t.put(BucketVendors, vendor.GUID, vendor); err != nil {
		return fmt.Errorf("failed to save vendor: %w", err)
	}
	return nil
}

// CreateVendor assigns a GUID and the next supplier code, then stores
// the vendor.
func (t *Tx) CreateVendor(vendor *models.Vendor) error {
	code, err := t.NextVendorCode()
	if err != nil {
		return err
	}
	vendor.GUID = NewGUID()
	vendor.Code = code
	return t.PutVendor(vendor)
}

// NextVendorCode assigns the next supplier code (SUP-001, SUP-002, ...).
func (t *Tx) NextVendorCode() (string, error) {
	seq, err := t.NextSequence(BucketVendors)
	if err != nil {
		return "", fmt.Errorf("failed to generate vendor code: %w", err)
	}
	return fmt.Sprintf("SUP-%03d", seq), nil
}

// GetVendor retrieves a vendor by GUID.
func (s *Store) GetVendor(guid string) (*models.Vendor, error) {
	var vendor *models.Vendor
	err := s.View(func(tx *Tx) error {
		var err error
		vendor, err = tx.Vendor(guid)
		return err
	})
	return vendor, err
}
