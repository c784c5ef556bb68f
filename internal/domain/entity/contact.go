package entity

// Contact datos de contacto compartidos por fabricantes y distribuidores.
type Contact struct {
	Address string
	URL     string
	Email   string
	Phone   string
	Fax     string
	Comment string
}
