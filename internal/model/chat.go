package model

type Chat struct {
	Id           int64
	IsSubscribed bool
}
