package usecase_test

import (
	"context"
	"testing"

	"nakhlestan/internal/domain/model"
	"nakhlestan/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRates_EmptyProvince(t *testing.T) {
	uc := usecase.NewShippingUsecase()

	rates, err := uc.EstimateRates(context.Background(), model.Address{}, 1000)

	assert.NoError(t, err)
	assert.Empty(t, rates)
}

func TestEstimateRates_TehranHasBikeCourierFirst(t *testing.T) {
	uc := usecase.NewShippingUsecase()

	rates, err := uc.EstimateRates(context.Background(), model.Address{Province: "تهران"}, 400)

	require.NoError(t, err)
	require.Len(t, rates, 4)
	assert.Equal(t, "bike", rates[0].Carrier)
	assert.Equal(t, 0, rates[0].EstimatedDays)
}

func TestEstimateRates_OtherProvinceNoBike(t *testing.T) {
	uc := usecase.NewShippingUsecase()

	rates, err := uc.EstimateRates(context.Background(), model.Address{Province: "اصفهان"}, 400)

	require.NoError(t, err)
	require.Len(t, rates, 3)
	for _, r := range rates {
		assert.NotEqual(t, "bike", r.Carrier)
	}
}

func TestEstimateRates_WeightSurcharge(t *testing.T) {
	uc := usecase.NewShippingUsecase()
	ctx := context.Background()

	//۴۰۰ گرم: بدون اضافه‌بار
	light, err := uc.EstimateRates(ctx, model.Address{Province: "اصفهان"}, 400)
	require.NoError(t, err)

	//۸۰۰ گرم: فقط یک پله اضافه‌بار
	mid, err := uc.EstimateRates(ctx, model.Address{Province: "اصفهان"}, 800)
	require.NoError(t, err)

	//۱۲۰۰ گرم: دو پله
	heavy, err := uc.EstimateRates(ctx, model.Address{Province: "اصفهان"}, 1200)
	require.NoError(t, err)

	for i := range light {
		assert.Equal(t, light[i].Price+8000, mid[i].Price)
		assert.Equal(t, light[i].Price+16000, heavy[i].Price)
	}
}

func TestEstimateRates_MonotoneInWeight(t *testing.T) {
	uc := usecase.NewShippingUsecase()
	ctx := context.Background()

	prev := int64(0)
	for _, w := range []int64{100, 600, 1100, 2100, 5100} {
		rates, err := uc.EstimateRates(ctx, model.Address{Province: "فارس"}, w)
		require.NoError(t, err)
		require.NotEmpty(t, rates)

		assert.GreaterOrEqual(t, rates[0].Price, prev, "weight %d", w)
		prev = rates[0].Price
	}
}

func TestEstimateRates_RemoteProvinceMultiplier(t *testing.T) {
	uc := usecase.NewShippingUsecase()
	ctx := context.Background()

	normal, err := uc.EstimateRates(ctx, model.Address{Province: "اصفهان"}, 400)
	require.NoError(t, err)

	remote, err := uc.EstimateRates(ctx, model.Address{Province: "هرمزگان"}, 400)
	require.NoError(t, err)

	require.Len(t, remote, len(normal))
	for i := range normal {
		//ضریب ۱.۵ روی نرخ پایه
		assert.Equal(t, normal[i].Price*3/2, remote[i].Price)
	}
}

func TestEstimateRates_SurchargeAfterRemoteMultiplier(t *testing.T) {
	uc := usecase.NewShippingUsecase()

	rates, err := uc.EstimateRates(context.Background(), model.Address{Province: "بوشهر"}, 800)
	require.NoError(t, err)
	require.NotEmpty(t, rates)

	//پست پیشتاز: 45000×1.5 + 8000
	assert.Equal(t, int64(75500), rates[0].Price)
}

func TestFlatShippingCost(t *testing.T) {
	assert.Zero(t, usecase.FlatShippingCost(""))
	assert.Equal(t, int64(45000), usecase.FlatShippingCost("تهران"))
	assert.Equal(t, int64(67500), usecase.FlatShippingCost("سیستان و بلوچستان"))
}
