// Package notify raises desktop alerts through the OS notification center.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

const appName = "drinklog"

type alertFunc func(title, message string, icon any) error

// Desktop sends alerts with beeep. The zero value is ready to use.
type Desktop struct {
	alert alertFunc
}

func NewDesktop() *Desktop {
	beeep.AppName = appName
	return &Desktop{alert: beeep.Alert}
}

func (d *Desktop) Alert(title, message string) error {
	send := d.alert
	if send == nil {
		send = beeep.Alert
	}
	if err := send(title, message, ""); err != nil {
		return fmt.Errorf("desktop alert: %w", err)
	}
	return nil
}
