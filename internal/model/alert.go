package model

import "time"

type Alert struct {
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}
