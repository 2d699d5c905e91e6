// Package clock abstrae el "ahora" y la zona horaria de la aplicación.
// El motor de movimientos y la agregación reciben un Clock en vez de llamar
// time.Now() directo: la zona es configuración, no una constante enterrada
// en la lógica, y los tests pueden congelar el tiempo.
package clock

import "time"

// Clock fuente de tiempo con zona horaria.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// System reloj real anclado a una zona IANA.
type System struct {
	loc *time.Location
}

// NewSystem carga la zona (ej. "America/Bogota") y construye el reloj.
func NewSystem(timezone string) (*System, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &System{loc: loc}, nil
}

// Now devuelve el instante actual en la zona configurada.
func (c *System) Now() time.Time { return time.Now().In(c.loc) }

// Location devuelve la zona configurada.
func (c *System) Location() *time.Location { return c.loc }
