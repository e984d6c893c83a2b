package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("account_role", validateAccountRole)
	_ = validate.RegisterValidation("phone", validatePhone)
	_ = validate.RegisterValidation("product_status", validateProductStatus)
	_ = validate.RegisterValidation("product_condition", validateProductCondition)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateAccountRole(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	validRoles := []string{
		"CUSTOMER", "VENDOR", "CUSTOMER_SERVICE", "ACCOUNT_OFFICER",
		"PRODUCT_MANAGER", "DELIVERY_AGENT", "LOGISTICS_AGENT", "ADMIN", "SUPER_ADMIN",
	}

	for _, validRole := range validRoles {
		if role == validRole {
			return true
		}
	}
	return false
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func validateProductStatus(fl validator.FieldLevel) bool {
	status := fl.Field().String()
	validStatuses := []string{
		"DRAFT", "PENDING_APPROVAL", "APPROVED", "REJECTED",
		"ACTIVE", "INACTIVE", "OUT_OF_STOCK", "SUSPENDED",
	}

	for _, validStatus := range validStatuses {
		if status == validStatus {
			return true
		}
	}
	return false
}

func validateProductCondition(fl validator.FieldLevel) bool {
	condition := fl.Field().String()
	validConditions := []string{"NEW", "USED", "REFURBISHED"}

	for _, validCondition := range validConditions {
		if condition == validCondition {
			return true
		}
	}
	return false
}
