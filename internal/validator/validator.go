// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("task_priority", validateTaskPriority)
		_ = v.RegisterValidation("task_status", validateTaskStatus)
		_ = v.RegisterValidation("activity_type", validateActivityType)
		_ = v.RegisterValidation("interaction_type", validateInteractionType)
		_ = v.RegisterValidation("setting_category", validateSettingCategory)
		_ = v.RegisterValidation("backlink_status", validateBacklinkStatus)
		_ = v.RegisterValidation("optimization_status", validateOptimizationStatus)
	}
}

func validateTaskPriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "high", "medium", "normal", "low":
		return true
	}
	return false
}

func validateTaskStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "in progress", "scheduled", "completed", "cancelled":
		return true
	}
	return false
}

func validateActivityType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "client-reply", "approval", "meeting-scheduled", "information-request", "issue-flagged":
		return true
	}
	return false
}

func validateInteractionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "email", "call", "meeting", "note":
		return true
	}
	return false
}

func validateSettingCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "general", "audit", "notification":
		return true
	}
	return false
}

func validateBacklinkStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "lost", "toxic", "disavowed":
		return true
	}
	return false
}

func validateOptimizationStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "applied", "dismissed":
		return true
	}
	return false
}
