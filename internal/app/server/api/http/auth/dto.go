package auth

import "net/http"

type credentials struct {
	Email    string `json:"email" maxLength:"254" doc:"Account email" example:"a@x.com"`
	Password string `json:"password" maxLength:"256" doc:"Account password, at least 6 characters"`
}

type signupInput struct {
	Body credentials
}

type loginInput struct {
	Body credentials
}

type logoutInput struct{}

type messageResponse struct {
	Message string `json:"message" example:"Logged in successfully!"`
}

type messageOutput struct {
	Body messageResponse
}

type cookieOutput struct {
	SetCookie http.Cookie `header:"Set-Cookie"`
	Body      messageResponse
}
