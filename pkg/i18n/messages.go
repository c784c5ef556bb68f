package i18n

import "golang.org/x/text/language"

// translations claves en inglés → texto por idioma. El inglés se usa como clave y no se repite.
var translations = map[language.Tag]map[string]string{
	language.German: {
		"Pieces":                              "Stück",
		"Minimum Stock Level is out of range": "Mindestbestand außerhalb des gültigen Bereichs",
		"The minimum stock level must be 0 or higher": "Der Mindestbestand muss 0 oder größer sein",
		"Packaging unit is out of range":              "Verpackungseinheit außerhalb des gültigen Bereichs",
		"The packaging unit must be 1 or higher":      "Die Verpackungseinheit muss 1 oder größer sein",
		"Stock amount is out of range":                "Lagermenge außerhalb des gültigen Bereichs",
		"The stock amount must be 1 or higher":        "Die Lagermenge muss 1 oder größer sein",
		"Record not found":                            "Datensatz nicht gefunden",
		"%s with id %d does not exist":                "%s mit der ID %d existiert nicht",
		"Validation failed":                           "Validierung fehlgeschlagen",
		"One or more fields are invalid":              "Ein oder mehrere Felder sind ungültig",
		"Invalid request":                             "Ungültige Anfrage",
		"Record is in use":                            "Datensatz wird verwendet",
		"The %s is still referenced by other records": "%s wird noch von anderen Datensätzen referenziert",
		"Duplicate record":                            "Doppelter Datensatz",
		"A %s with the same name already exists":      "%s mit diesem Namen existiert bereits",
		"Record %d does not belong to this part":      "Datensatz %d gehört nicht zu diesem Bauteil",
		"Unknown service %q":                          "Unbekannter Dienst %q",
		"Unknown call %q for service %q":              "Unbekannter Aufruf %q für Dienst %q",
		"A category cannot be moved below itself":     "Eine Kategorie kann nicht unter sich selbst verschoben werden",
		"This field is required":                      "Dieses Feld ist erforderlich",
		"This value is too long":                      "Dieser Wert ist zu lang",
		"This value is invalid":                       "Dieser Wert ist ungültig",
		"This value is too small":                     "Dieser Wert ist zu klein",
		"This value is not a valid email address":     "Dieser Wert ist keine gültige E-Mail-Adresse",
		"This value is not a valid URL":               "Dieser Wert ist keine gültige URL",
		"Invalid number %s":                           "Ungültige Zahl %s",
		"Invalid record id %s":                        "Ungültige Datensatz-ID %s",
		"Part id is required":                         "Die Bauteil-ID ist erforderlich",
		"Record id is required":                       "Die Datensatz-ID ist erforderlich",
		"Invalid parameters":                          "Ungültige Parameter",
		"Stock Entry":                                 "Lagerbewegung",
		"Part Parameter":                              "Bauteilparameter",
		"Part":                                        "Bauteil",
		"Category":                                    "Kategorie",
		"Footprint":                                   "Bauform",
		"Storage Location":                            "Lagerort",
		"Manufacturer":                                "Hersteller",
		"Distributor":                                 "Lieferant",
		"Part Unit":                                   "Maßeinheit",
		"Stock":                                       "Bestand",
		"Minimum Stock":                               "Mindestbestand",
		"Average Price":                               "Durchschnittspreis",
		"Comment":                                     "Kommentar",
		"Parameters":                                  "Parameter",
		"Manufacturers":                               "Hersteller",
		"Distributors":                                "Lieferanten",
		"Part Number":                                 "Teilenummer",
		"Order Number":                                "Bestellnummer",
		"Packaging Unit":                              "Verpackungseinheit",
		"Price":                                       "Preis",
		"Name":                                        "Name",
		"Value":                                       "Wert",
	},
	language.Spanish: {
		"Pieces":                              "Piezas",
		"Minimum Stock Level is out of range": "El stock mínimo está fuera de rango",
		"The minimum stock level must be 0 or higher": "El stock mínimo debe ser 0 o mayor",
		"Packaging unit is out of range":              "La unidad de empaque está fuera de rango",
		"The packaging unit must be 1 or higher":      "La unidad de empaque debe ser 1 o mayor",
		"Stock amount is out of range":                "La cantidad de stock está fuera de rango",
		"The stock amount must be 1 or higher":        "La cantidad de stock debe ser 1 o mayor",
		"Record not found":                            "Registro no encontrado",
		"%s with id %d does not exist":                "%s con id %d no existe",
		"Validation failed":                           "Error de validación",
		"One or more fields are invalid":              "Uno o más campos son inválidos",
		"Invalid request":                             "Petición inválida",
		"Record is in use":                            "Registro en uso",
		"The %s is still referenced by other records": "%s todavía es referenciado por otros registros",
		"Duplicate record":                            "Registro duplicado",
		"A %s with the same name already exists":      "Ya existe %s con el mismo nombre",
		"Record %d does not belong to this part":      "El registro %d no pertenece a esta pieza",
		"Unknown service %q":                          "Servicio desconocido %q",
		"Unknown call %q for service %q":              "Llamada desconocida %q para el servicio %q",
		"A category cannot be moved below itself":     "Una categoría no puede moverse debajo de sí misma",
		"This field is required":                      "Este campo es obligatorio",
		"This value is too long":                      "Este valor es demasiado largo",
		"This value is invalid":                       "Este valor es inválido",
		"This value is too small":                     "Este valor es demasiado pequeño",
		"This value is not a valid email address":     "Este valor no es un correo válido",
		"This value is not a valid URL":               "Este valor no es una URL válida",
		"Invalid number %s":                           "Número inválido %s",
		"Invalid record id %s":                        "Id de registro inválido %s",
		"Part id is required":                         "El id de la pieza es obligatorio",
		"Record id is required":                       "El id del registro es obligatorio",
		"Invalid parameters":                          "Parámetros inválidos",
		"Stock Entry":                                 "Movimiento de stock",
		"Part Parameter":                              "Parámetro de pieza",
		"Part":                                        "Pieza",
		"Category":                                    "Categoría",
		"Footprint":                                   "Encapsulado",
		"Storage Location":                            "Ubicación",
		"Manufacturer":                                "Fabricante",
		"Distributor":                                 "Distribuidor",
		"Part Unit":                                   "Unidad",
		"Stock":                                       "Stock",
		"Minimum Stock":                               "Stock mínimo",
		"Average Price":                               "Precio promedio",
		"Comment":                                     "Comentario",
		"Parameters":                                  "Parámetros",
		"Manufacturers":                               "Fabricantes",
		"Distributors":                                "Distribuidores",
		"Part Number":                                 "Número de parte",
		"Order Number":                                "Número de pedido",
		"Packaging Unit":                              "Unidad de empaque",
		"Price":                                       "Precio",
		"Name":                                        "Nombre",
		"Value":                                       "Valor",
	},
}
