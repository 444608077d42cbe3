package services

import (
	"errors"

	"github.com/Tobix2/Calorika-sub000/config"
	"github.com/Tobix2/Calorika-sub000/models"
	"github.com/Tobix2/Calorika-sub000/utils"
)

func RegisterUser(email, password, firstName, lastName, accountType string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	if accountType != models.AccountTypeProfessional {
		accountType = models.AccountTypeUser
	}

	user := models.User{
		Email:       email,
		Password:    hashedPassword,
		FirstName:   firstName,
		LastName:    lastName,
		AccountType: accountType,
		Disabled:    false,
	}

	result := config.DB.Create(&user)
	return result.Error
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}
	return &user, nil
}

func AuthenticateUser(email, password string) (string, error) {
	user, err := FindUserByEmail(email)
	if err != nil {
		return "", err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", err
	}

	return token, nil
}
