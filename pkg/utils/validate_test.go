package utils

import "testing"

type roleInput struct {
	Role string `validate:"omitempty,account_role"`
}

type phoneInput struct {
	Phone string `validate:"required,phone"`
}

type statusInput struct {
	Status string `validate:"omitempty,product_status"`
}

type conditionInput struct {
	Condition string `validate:"omitempty,product_condition"`
}

func TestAccountRoleValidator(t *testing.T) {
	valid := []string{
		"", "CUSTOMER", "VENDOR", "CUSTOMER_SERVICE", "ACCOUNT_OFFICER",
		"PRODUCT_MANAGER", "DELIVERY_AGENT", "LOGISTICS_AGENT", "ADMIN", "SUPER_ADMIN",
	}
	for _, role := range valid {
		if err := ValidateStruct(&roleInput{Role: role}); err != nil {
			t.Errorf("ValidateStruct(role=%q) error = %v", role, err)
		}
	}

	for _, role := range []string{"customer", "ROOT", "ADMIN "} {
		if err := ValidateStruct(&roleInput{Role: role}); err == nil {
			t.Errorf("ValidateStruct(role=%q) accepted invalid role", role)
		}
	}
}

func TestPhoneValidator(t *testing.T) {
	valid := []string{"+14155550100", "14155550100", "+442071838750"}
	for _, phone := range valid {
		if err := ValidateStruct(&phoneInput{Phone: phone}); err != nil {
			t.Errorf("ValidateStruct(phone=%q) error = %v", phone, err)
		}
	}

	invalid := []string{"", "0123456", "+1 415 555 0100", "phone", "+14155550100123456"}
	for _, phone := range invalid {
		if err := ValidateStruct(&phoneInput{Phone: phone}); err == nil {
			t.Errorf("ValidateStruct(phone=%q) accepted invalid phone", phone)
		}
	}
}

func TestProductStatusValidator(t *testing.T) {
	for _, status := range []string{"", "DRAFT", "ACTIVE", "SUSPENDED"} {
		if err := ValidateStruct(&statusInput{Status: status}); err != nil {
			t.Errorf("ValidateStruct(status=%q) error = %v", status, err)
		}
	}

	for _, status := range []string{"draft", "DELETED"} {
		if err := ValidateStruct(&statusInput{Status: status}); err == nil {
			t.Errorf("ValidateStruct(status=%q) accepted invalid status", status)
		}
	}
}

func TestProductConditionValidator(t *testing.T) {
	for _, condition := range []string{"", "NEW", "USED", "REFURBISHED"} {
		if err := ValidateStruct(&conditionInput{Condition: condition}); err != nil {
			t.Errorf("ValidateStruct(condition=%q) error = %v", condition, err)
		}
	}

	if err := ValidateStruct(&conditionInput{Condition: "BROKEN"}); err == nil {
		t.Error("ValidateStruct accepted invalid condition")
	}
}
