package entity

// PartManufacturer vincula una pieza con un fabricante y su número de parte.
type PartManufacturer struct {
	ID           int64
	PartID       int64
	Manufacturer *Manufacturer
	PartNumber   string
}

// PartManufacturerSnapshot forma serializada del vínculo.
type PartManufacturerSnapshot struct {
	ID               int64   `json:"id"`
	ManufacturerID   *int64  `json:"manufacturer_id"`
	ManufacturerName *string `json:"manufacturer_name"`
	PartNumber       string  `json:"partNumber"`
}

func (m *PartManufacturer) Serialize() PartManufacturerSnapshot {
	s := PartManufacturerSnapshot{ID: m.ID, PartNumber: m.PartNumber}
	if m.Manufacturer != nil {
		s.ManufacturerID = ptr(m.Manufacturer.ID)
		s.ManufacturerName = ptr(m.Manufacturer.Name)
	}
	return s
}
