package model

import "strings"

// Fabric is a roll of material known to the catalog.
type Fabric struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	Width        int    `json:"width"` // Roll width (mm)
	Code         string `json:"code"`
}

// Normalize trims the text fields.
func (f Fabric) Normalize() Fabric {
	f.Name = strings.TrimSpace(f.Name)
	f.Manufacturer = strings.TrimSpace(f.Manufacturer)
	f.Code = strings.TrimSpace(f.Code)
	return f
}

// Validate requires a name and a positive width.
func (f Fabric) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid("name", "is required")
	}
	if f.Width <= 0 {
		return invalid("width", "must be greater than zero")
	}
	return nil
}

// ApplyTo makes the fabric width the usable width of the disposition.
func (f Fabric) ApplyTo(c *LayoutConfig) {
	c.DefinedWidth = f.Width
}

// CuttingTable is a cutting machine bed.
type CuttingTable struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`  // mm
	Length int    `json:"length"` // mm
}

// Normalize trims the name.
func (t CuttingTable) Normalize() CuttingTable {
	t.Name = strings.TrimSpace(t.Name)
	return t
}

// Validate requires a name and positive dimensions.
func (t CuttingTable) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return invalid("name", "is required")
	}
	if t.Width <= 0 {
		return invalid("width", "must be greater than zero")
	}
	if t.Length <= 0 {
		return invalid("length", "must be greater than zero")
	}
	return nil
}

// ApplyTo sets the table length as the maximum length of the disposition,
// and narrows the usable width when the table is narrower than the config.
func (t CuttingTable) ApplyTo(c *LayoutConfig) {
	c.MaxLength = t.Length
	if c.DefinedWidth <= 0 || c.DefinedWidth > t.Width {
		c.DefinedWidth = t.Width
	}
}
