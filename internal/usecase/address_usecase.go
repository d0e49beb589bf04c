package usecase

import (
	"context"
	"net/http"
	"strings"

	"nakhlestan/internal/domain/model"
	repo "nakhlestan/internal/repository"
	"nakhlestan/internal/validator"
)

type AddressUsecase struct {
	addresses repo.AddressRepository
}

func NewAddressUsecase(addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

type AddressInput struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Province     string `json:"province"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
	PostalCode   string `json:"postal_code"`
	Unit         string `json:"unit"`
	IsDefault    bool   `json:"is_default"`
}

// همان قواعد checkout؛ آدرس ناقص اصلا ذخیره نمی‌شود
func validateAddressInput(in AddressInput) []string {
	errs := []string{}

	if !validator.RuneLenAtLeast(in.Name, 3) {
		errs = append(errs, "نام گیرنده باید حداقل ۳ حرف باشد")
	}
	if !validator.IsIranianMobile(in.Phone) {
		errs = append(errs, "شماره موبایل گیرنده معتبر نیست")
	}
	if strings.TrimSpace(in.Province) == "" {
		errs = append(errs, "استان را انتخاب کنید")
	}
	if strings.TrimSpace(in.City) == "" {
		errs = append(errs, "شهر را وارد کنید")
	}
	if !validator.RuneLenAtLeast(in.Street, 10) {
		errs = append(errs, "نشانی کامل باید حداقل ۱۰ حرف باشد")
	}
	if !validator.IsPostalCode(in.PostalCode) {
		errs = append(errs, "کد پستی باید دقیقا ۱۰ رقم باشد")
	}

	return errs
}

func (u *AddressUsecase) Create(ctx context.Context, userID int64, in AddressInput) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if errs := validateAddressInput(in); len(errs) > 0 {
		return model.Address{}, NewHTTPError(http.StatusBadRequest, strings.Join(errs, "؛ "))
	}

	created, err := u.addresses.Create(ctx, model.Address{
		UserID:       userID,
		Name:         strings.TrimSpace(in.Name),
		Phone:        validator.NormalizeMobile(in.Phone),
		Province:     strings.TrimSpace(in.Province),
		City:         strings.TrimSpace(in.City),
		Neighborhood: strings.TrimSpace(in.Neighborhood),
		Street:       strings.TrimSpace(in.Street),
		PostalCode:   validator.NormalizeDigits(in.PostalCode),
		Unit:         strings.TrimSpace(in.Unit),
		IsDefault:    in.IsDefault,
	})
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.IsDefault {
		if err := u.addresses.SetDefault(ctx, userID, created.ID); err != nil {
			return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return created, nil
}

func (u *AddressUsecase) List(ctx context.Context, userID int64) ([]model.Address, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	list, err := u.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return list, nil
}

func (u *AddressUsecase) Update(ctx context.Context, userID int64, addressID int64, in AddressInput) (model.Address, error) {
	if userID <= 0 {
		return model.Address{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	owned, err := u.addresses.IsOwnedByUser(ctx, addressID, userID)
	if err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return model.Address{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if errs := validateAddressInput(in); len(errs) > 0 {
		return model.Address{}, NewHTTPError(http.StatusBadRequest, strings.Join(errs, "؛ "))
	}

	updated := model.Address{
		ID:           addressID,
		UserID:       userID,
		Name:         strings.TrimSpace(in.Name),
		Phone:        validator.NormalizeMobile(in.Phone),
		Province:     strings.TrimSpace(in.Province),
		City:         strings.TrimSpace(in.City),
		Neighborhood: strings.TrimSpace(in.Neighborhood),
		Street:       strings.TrimSpace(in.Street),
		PostalCode:   validator.NormalizeDigits(in.PostalCode),
		Unit:         strings.TrimSpace(in.Unit),
		IsDefault:    in.IsDefault,
	}
	if err := u.addresses.Update(ctx, updated); err != nil {
		return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.IsDefault {
		if err := u.addresses.SetDefault(ctx, userID, addressID); err != nil {
			return model.Address{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return updated, nil
}

func (u *AddressUsecase) Delete(ctx context.Context, userID int64, addressID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	owned, err := u.addresses.IsOwnedByUser(ctx, addressID, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.addresses.Delete(ctx, addressID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *AddressUsecase) SetDefault(ctx context.Context, userID int64, addressID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	owned, err := u.addresses.IsOwnedByUser(ctx, addressID, userID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.addresses.SetDefault(ctx, userID, addressID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
