package model

import "time"

type Hunt struct {
	ID         int64
	ShortCode  string
	Name       string
	Guidelines *string
	IsDeleted  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
