// Package conn implements raw bus access for display controllers.
package conn

import (
	"fmt"
	"strconv"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

type I2C struct {
	bus  i2c.BusCloser
	conn conn.Conn
}

// OpenI2C opens the numbered I²C bus and addresses the device at addr.
// A negative bus number selects the first available bus.
func OpenI2C(bus int, addr uint8) (*I2C, error) {
	var (
		b   i2c.BusCloser
		err error
	)
	if bus < 0 {
		b, err = i2creg.Open("")
	} else {
		b, err = i2creg.Open(strconv.FormatInt(int64(bus), 10))
	}
	if err != nil {
		return nil, err
	}

	return &I2C{
		bus:  b,
		conn: &i2c.Dev{Bus: b, Addr: uint16(addr)},
	}, nil
}

func (c *I2C) String() string {
	return fmt.Sprintf("I²C bus %s", c.bus)
}

func (c *I2C) Close() error {
	return c.bus.Close()
}

func (c *I2C) Read(p []byte) (int, error) {
	return len(p), c.conn.Tx(nil, p)
}

func (c *I2C) Write(p []byte) (int, error) {
	return len(p), c.conn.Tx(p, nil)
}
