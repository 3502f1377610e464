package oled

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/infoscreen/oled/conn"
)

// Conn errors.
var (
	ErrResetPin = errors.New("oled: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("oled: data/command (DC) GPIO pin is invalid")
)

// Conn is the connection interface for communicating with hardware.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Command sends a command byte with optional arguments.
	Command(byte, ...byte) error

	// Data sends data bytes.
	Data(...byte) error
}

// I2CConfig describes the I²C bus configuration.
type I2CConfig struct {
	// Bus is the I²C bus number, use -1 to use the first available bus.
	Bus int

	// Addr is the I²C address.
	Addr uint8
}

var DefaultI2CConfig = I2CConfig{
	Bus:  1,
	Addr: 0x3c,
}

type i2cConn struct {
	*conn.I2C
}

func OpenI2C(config *I2CConfig) (Conn, error) {
	if config == nil {
		config = new(I2CConfig)
		*config = DefaultI2CConfig
	}

	c, err := conn.OpenI2C(config.Bus, config.Addr)
	if err != nil {
		return nil, err
	}

	return &i2cConn{I2C: c}, nil
}

func (c *i2cConn) Command(cmnd byte, args ...byte) (err error) {
	_, err = c.I2C.Write(append([]byte{0x00, cmnd}, args...))
	return
}

func (c *i2cConn) Data(data ...byte) (err error) {
	_, err = c.I2C.Write(append([]byte{0x40}, data...))
	return
}

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	Bus     int
	Device  int
	SpeedHz int64
	DC      gpio.PinOut
	Reset   gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	Bus:     0,
	Device:  0,
	SpeedHz: 8_000_000,
}

// ValidSPISpeeds are common valid SPI bus speeds.
var ValidSPISpeeds = []int64{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
	8_000_000,
	16_000_000,
	20_000_000,
	24_000_000,
	32_000_000,
}

type spiConn struct {
	bus     *conn.SPI
	dc      gpio.PinOut
	dcLevel gpio.Level
}

func OpenSPI(config *SPIConfig) (Conn, error) {
	if config == nil {
		config = new(SPIConfig)
		*config = DefaultSPIConfig
	}

	if config.DC == nil || config.DC == gpio.INVALID {
		return nil, ErrDCPin
	}

	if config.SpeedHz == 0 {
		config.SpeedHz = DefaultSPIConfig.SpeedHz
	}
	var valid bool
	for _, speed := range ValidSPISpeeds {
		if valid = speed == config.SpeedHz; valid {
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("oled: invalid SPI speed %dHz", config.SpeedHz)
	}

	c, err := conn.OpenSPI(config.Bus, config.Device, config.SpeedHz)
	if err != nil {
		return nil, err
	}

	if config.Reset != nil && config.Reset != gpio.INVALID {
		if err = config.Reset.Out(gpio.High); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	if err = config.DC.Out(gpio.Low); err != nil {
		_ = c.Close()
		return nil, err
	}

	return &spiConn{
		bus: c,
		dc:  config.DC,
	}, nil
}

func (c *spiConn) String() string {
	return c.bus.String()
}

func (c *spiConn) Close() error {
	return c.bus.Close()
}

func (c *spiConn) updateDC(level gpio.Level) error {
	if c.dcLevel != level {
		if err := c.dc.Out(level); err != nil {
			return err
		}
		c.dcLevel = level
	}
	return nil
}

func (c *spiConn) Command(cmnd byte, data ...byte) (err error) {
	if err = c.updateDC(gpio.Low); err != nil {
		return
	}
	if _, err = c.bus.Write([]byte{cmnd}); err != nil {
		return
	}
	if len(data) > 0 {
		if err = c.updateDC(gpio.High); err != nil {
			return
		}
		_, err = c.bus.Write(data)
	}
	return
}

func (c *spiConn) Data(data ...byte) (err error) {
	if len(data) == 0 {
		return
	}
	if err = c.updateDC(gpio.High); err != nil {
		return
	}
	_, err = c.bus.Write(data)
	return
}
