package usecase

import (
	"nakhlestan/internal/domain/model"
	"nakhlestan/internal/validator"
)

// نتیجه دسته‌بندی و اعتبارسنجی checkout.
// هیچ‌وقت ذخیره نمی‌شود؛ هر بار از نو محاسبه می‌شود.
type CheckoutValidation struct {
	DeliveryType model.DeliveryType `json:"delivery_type"`

	PhysicalItems []model.CartItem `json:"physical_items"`
	DigitalItems  []model.CartItem `json:"digital_items"`

	RequiresPhysicalAddress bool `json:"requires_physical_address"`
	RequiresDigitalAddress  bool `json:"requires_digital_address"`

	//پیام‌های خطای قابل نمایش؛ خالی یعنی معتبر
	Errors  []string `json:"errors"`
	IsValid bool     `json:"is_valid"`

	//برآورد ساده هزینه ارسال (تومان)؛ برای سفارش دیجیتال صفر
	ShippingCost int64 `json:"shipping_cost"`
}

// CheckoutUsecase سبد را دسته‌بندی و آدرس‌ها را بررسی می‌کند.
// خطای اعتبارسنجی هیچ‌وقت به صورت error برنمی‌گردد؛ همه در Errors جمع می‌شوند
// و جلوگیری از ادامه با IsValid بر عهده caller است.
type CheckoutUsecase struct{}

func NewCheckoutUsecase() *CheckoutUsecase {
	return &CheckoutUsecase{}
}

// Classify سبد و آدرس‌ها را به CheckoutValidation تبدیل می‌کند.
// هر قلم دقیقا در یکی از دو دسته فیزیکی/دیجیتال قرار می‌گیرد.
func (u *CheckoutUsecase) Classify(items []model.CartItem, physical *model.Address, digital *model.DigitalAddress) CheckoutValidation {
	out := CheckoutValidation{
		PhysicalItems: []model.CartItem{},
		DigitalItems:  []model.CartItem{},
		Errors:        []string{},
	}

	for _, it := range items {
		if it.CategorySnapshot.DeliveryClass() == model.DeliveryClassPhysical {
			out.PhysicalItems = append(out.PhysicalItems, it)
		} else {
			out.DigitalItems = append(out.DigitalItems, it)
		}
	}

	//سبد خالی هم دیجیتال حساب می‌شود (بدون نیاز به آدرس)
	switch {
	case len(out.PhysicalItems) > 0 && len(out.DigitalItems) > 0:
		out.DeliveryType = model.DeliveryTypeHybrid
	case len(out.PhysicalItems) > 0:
		out.DeliveryType = model.DeliveryTypePhysical
	default:
		out.DeliveryType = model.DeliveryTypeDigital
	}

	out.RequiresPhysicalAddress = len(out.PhysicalItems) > 0
	out.RequiresDigitalAddress = len(out.DigitalItems) > 0

	if out.RequiresPhysicalAddress {
		//همه فیلدها مستقل بررسی می‌شوند تا کاربر همه خطاها را یک‌جا ببیند
		out.Errors = append(out.Errors, validatePhysicalAddress(physical)...)
	}

	if out.RequiresDigitalAddress {
		if !hasDigitalContact(digital) {
			out.Errors = append(out.Errors, "برای دریافت گواهی دیجیتال، ایمیل یا شماره موبایل معتبر وارد کنید")
		}
	}

	out.IsValid = len(out.Errors) == 0

	//برآورد هزینه ارسال فقط وقتی استان مشخص است
	if out.RequiresPhysicalAddress && physical != nil {
		out.ShippingCost = FlatShippingCost(physical.Province)
	}

	return out
}

// بررسی آدرس پستی؛ بدون short-circuit بین فیلدها
func validatePhysicalAddress(a *model.Address) []string {
	if a == nil {
		return []string{"آدرس پستی برای ارسال اقلام فیزیکی لازم است"}
	}

	errs := []string{}

	if !validator.RuneLenAtLeast(a.Name, 3) {
		errs = append(errs, "نام گیرنده باید حداقل ۳ حرف باشد")
	}
	if !validator.IsIranianMobile(a.Phone) {
		errs = append(errs, "شماره موبایل گیرنده معتبر نیست")
	}
	if !validator.RuneLenAtLeast(a.Province, 1) {
		errs = append(errs, "استان را انتخاب کنید")
	}
	if !validator.RuneLenAtLeast(a.City, 1) {
		errs = append(errs, "شهر را وارد کنید")
	}
	if !validator.RuneLenAtLeast(a.Street, 10) {
		errs = append(errs, "نشانی کامل باید حداقل ۱۰ حرف باشد")
	}
	if !validator.IsPostalCode(a.PostalCode) {
		errs = append(errs, "کد پستی باید دقیقا ۱۰ رقم باشد")
	}

	return errs
}

// برای گواهی دیجیتال یکی از ایمیل یا موبایل معتبر کافی است
func hasDigitalContact(d *model.DigitalAddress) bool {
	if d == nil {
		return false
	}
	if validator.IsEmail(d.Email) {
		return true
	}
	if validator.IsIranianMobile(d.Phone) {
		return true
	}
	return false
}
