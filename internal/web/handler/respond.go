package handler

import "github.com/gofiber/fiber/v2"

// Response is the uniform envelope returned by every API handler.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
	Errors  []string    `json:"errors,omitempty"`
}

// OK sends a successful envelope with the given payload.
func OK(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{Success: true, Data: data, Message: message})
}

// Created sends a successful envelope with status 201.
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{Success: true, Data: data, Message: message})
}

// Fail sends a failure envelope with the given status code.
func Fail(c *fiber.Ctx, status int, message string, errs ...string) error {
	return c.Status(status).JSON(Response{Success: false, Message: message, Errors: errs})
}
