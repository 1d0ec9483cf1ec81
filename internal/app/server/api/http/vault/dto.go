package vault

import "passvault/internal/domain/vault"

type listInput struct{}

type listOutput struct {
	Body struct {
		Items []vault.Entry `json:"items"`
	}
}

type createRequest struct {
	Title    string `json:"title" doc:"Ciphertext produced by the client"`
	Username string `json:"username" doc:"Ciphertext produced by the client"`
	Password string `json:"password" doc:"Ciphertext produced by the client"`
	URL      string `json:"url,omitempty" doc:"Ciphertext produced by the client"`
	Notes    string `json:"notes,omitempty" doc:"Ciphertext produced by the client"`
}

type createInput struct {
	Body createRequest
}

// updateRequest — отсутствующее поле не меняется
type updateRequest struct {
	Title    *string `json:"title,omitempty" doc:"Ciphertext produced by the client"`
	Username *string `json:"username,omitempty" doc:"Ciphertext produced by the client"`
	Password *string `json:"password,omitempty" doc:"Ciphertext produced by the client"`
	URL      *string `json:"url,omitempty" doc:"Ciphertext produced by the client"`
	Notes    *string `json:"notes,omitempty" doc:"Ciphertext produced by the client"`
}

type updateInput struct {
	ID   string        `path:"id" doc:"Entry ID"`
	Body *updateRequest
}

type deleteInput struct {
	ID string `path:"id" doc:"Entry ID"`
}

type itemResponse struct {
	Message string      `json:"message" example:"Item added successfully!"`
	Item    vault.Entry `json:"item"`
}

type itemOutput struct {
	Body itemResponse
}

type messageOutput struct {
	Body struct {
		Message string `json:"message" example:"Item deleted successfully."`
	}
}
