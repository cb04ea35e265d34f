package model

type Client struct {
	Base
	Name string `db:"name" json:"name"`
}

type CreateClientRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type UpdateClientRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}
