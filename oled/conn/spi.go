package conn

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// SPI wraps a periph.io SPI port connected to a display controller.
type SPI struct {
	port spi.PortCloser
	conn conn.Conn
	name string
}

// OpenSPI opens the numbered SPI bus with the numbered device. The device
// often corresponds to the CS pin for that bus. A negative bus number
// selects the first available port.
func OpenSPI(bus, device int, speedHz int64) (*SPI, error) {
	name := ""
	if bus >= 0 {
		name = fmt.Sprintf("SPI%d.%d", bus, device)
	}
	port, err := spireg.Open(name)
	if err != nil {
		return nil, err
	}

	c, err := port.Connect(physic.Frequency(speedHz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		return nil, err
	}

	return &SPI{
		port: port,
		conn: c,
		name: name,
	}, nil
}

func (c *SPI) String() string {
	if c.name == "" {
		return "SPI bus"
	}
	return fmt.Sprintf("SPI bus %s", c.name)
}

func (c *SPI) Close() error {
	return c.port.Close()
}

func (c *SPI) Write(p []byte) (int, error) {
	return len(p), c.conn.Tx(p, nil)
}
