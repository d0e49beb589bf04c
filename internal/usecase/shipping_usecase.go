package usecase

import (
	"context"

	"nakhlestan/internal/domain/model"

	"github.com/shopspring/decimal"
)

// نرخ یک شرکت حمل؛ هر بار از نو محاسبه می‌شود و جایی cache نمی‌شود.
type ShippingRate struct {
	Carrier       string `json:"carrier"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	EstimatedDays int    `json:"estimated_days"`
}

const (
	//استان پایتخت؛ فقط اینجا پیک موتوری داریم
	capitalProvince = "تهران"

	//هر ۵۰۰ گرم اضافه بعد از ۵۰۰ گرم اول، به قیمت همه شرکت‌ها اضافه می‌شود
	weightStepGrams     = 500
	weightStepSurcharge = 8000
)

// نرخ پایه و زمان تحویل هر شرکت ثابت است؛
// در استقرار واقعی این جدول با API شرکت‌های حمل جایگزین می‌شود.
var carrierTable = []ShippingRate{
	{Carrier: "post", Name: "پست پیشتاز", Price: 45000, EstimatedDays: 3},
	{Carrier: "tipax", Name: "تیپاکس", Price: 60000, EstimatedDays: 2},
	{Carrier: "chapar", Name: "چاپار", Price: 55000, EstimatedDays: 2},
}

var bikeCourier = ShippingRate{Carrier: "bike", Name: "پیک موتوری (همان روز)", Price: 80000, EstimatedDays: 0}

// استان‌های دور؛ ضریب ۱.۵ روی نرخ پایه
var remoteProvinces = map[string]bool{
	"سیستان و بلوچستان": true,
	"هرمزگان":           true,
	"بوشهر":             true,
	"خراسان جنوبی":      true,
	"کهگیلویه و بویراحمد": true,
}

var remoteMultiplier = decimal.RequireFromString("1.5")

// ShippingUsecase نرخ ارسال را برآورد می‌کند.
type ShippingUsecase struct{}

func NewShippingUsecase() *ShippingUsecase {
	return &ShippingUsecase{}
}

// EstimateRates فهرست مرتب نرخ‌ها را برمی‌گرداند.
// استان خالی یعنی فهرست خالی؛ خطا نیست، UI باید استان بخواهد.
// ctx برای اتصال آینده به API واقعی شرکت‌های حمل در امضا مانده است.
func (u *ShippingUsecase) EstimateRates(ctx context.Context, dest model.Address, weightGrams int64) ([]ShippingRate, error) {
	if dest.Province == "" {
		return []ShippingRate{}, nil
	}

	surcharge := weightSurcharge(weightGrams)
	remote := remoteProvinces[dest.Province]

	rates := make([]ShippingRate, 0, len(carrierTable)+1)

	//پیک موتوری فقط برای پایتخت و همیشه اول فهرست
	if dest.Province == capitalProvince {
		r := bikeCourier
		r.Price += surcharge
		rates = append(rates, r)
	}

	for _, c := range carrierTable {
		r := c
		if remote {
			r.Price = applyRemoteMultiplier(r.Price)
		}
		r.Price += surcharge
		rates = append(rates, r)
	}

	return rates, nil
}

// FlatShippingCost برآورد ساده برای CheckoutValidation؛ بدون وزن.
// استان خالی یعنی صفر.
func FlatShippingCost(province string) int64 {
	if province == "" {
		return 0
	}
	base := carrierTable[0].Price
	if remoteProvinces[province] {
		return applyRemoteMultiplier(base)
	}
	return base
}

// هر ۵۰۰ گرم کامل بعد از ۵۰۰ گرم اول
func weightSurcharge(weightGrams int64) int64 {
	if weightGrams <= weightStepGrams {
		return 0
	}
	steps := (weightGrams - weightStepGrams) / weightStepGrams
	if (weightGrams-weightStepGrams)%weightStepGrams > 0 {
		steps++
	}
	return steps * weightStepSurcharge
}

// ضرب با decimal تا خطای float روی مبلغ نیاید
func applyRemoteMultiplier(price int64) int64 {
	return decimal.NewFromInt(price).Mul(remoteMultiplier).IntPart()
}
