package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pressdeck/pressdeck/internal/database/testutil"
	"github.com/pressdeck/pressdeck/internal/models"
)

func newMonitoringService(t *testing.T) *MonitoringService {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewMonitoringService(db, DefaultAVEWeights())
	require.NoError(t, err)
	return svc
}

func TestMonitoringService_AVE(t *testing.T) {
	svc := newMonitoringService(t)

	tests := []struct {
		name     string
		clipping models.Clipping
		want     float64
	}{
		{
			name:     "print positive",
			clipping: models.Clipping{Reach: 10000, OutletType: models.OutletTypePrint, Sentiment: models.SentimentPositive},
			want:     36000, // 10000 * 3.0 * 1.2
		},
		{
			name:     "online negative",
			clipping: models.Clipping{Reach: 5000, OutletType: models.OutletTypeOnline, Sentiment: models.SentimentNegative},
			want:     3000, // 5000 * 1.0 * 0.6
		},
		{
			name:     "unknown outlet falls back to factor one",
			clipping: models.Clipping{Reach: 2000, OutletType: "podcast", Sentiment: models.SentimentNeutral},
			want:     2000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, svc.AVE(tt.clipping), 0.001)
		})
	}
}

func TestMonitoringService_AddClippingNormalizes(t *testing.T) {
	svc := newMonitoringService(t)

	clipping, err := svc.AddClipping(context.Background(), testOrg, ClippingInput{
		Outlet:     "  Handelsblatt ",
		OutletType: "Print",
		Sentiment:  "POSITIVE",
		Reach:      120000,
	})
	require.NoError(t, err)
	require.Equal(t, "Handelsblatt", clipping.Outlet)
	require.Equal(t, models.OutletTypePrint, clipping.OutletType)
	require.Equal(t, models.SentimentPositive, clipping.Sentiment)
}

func TestMonitoringService_AddClippingRejectsNegativeReach(t *testing.T) {
	svc := newMonitoringService(t)

	_, err := svc.AddClipping(context.Background(), testOrg, ClippingInput{Outlet: "X", Reach: -1})
	require.Error(t, err)
}

func TestMonitoringService_Report(t *testing.T) {
	svc := newMonitoringService(t)
	ctx := context.Background()

	_, err := svc.AddClipping(ctx, testOrg, ClippingInput{
		Outlet: "A", OutletType: models.OutletTypePrint, Sentiment: models.SentimentPositive, Reach: 10000,
	})
	require.NoError(t, err)
	_, err = svc.AddClipping(ctx, testOrg, ClippingInput{
		Outlet: "B", OutletType: models.OutletTypeOnline, Sentiment: models.SentimentNegative, Reach: 5000,
	})
	require.NoError(t, err)

	report, err := svc.Report(ctx, testOrg, ListClippingsOptions{})
	require.NoError(t, err)
	require.EqualValues(t, 2, report.ClippingCount)
	require.EqualValues(t, 15000, report.TotalReach)
	require.InDelta(t, 39000, report.TotalAVE, 0.001)
	require.InDelta(t, 19500, report.AverageAVE, 0.001)
	require.InDelta(t, 0.5, report.PositiveShare, 0.001)
}

func TestMonitoringService_ReportEmpty(t *testing.T) {
	svc := newMonitoringService(t)

	report, err := svc.Report(context.Background(), testOrg, ListClippingsOptions{})
	require.NoError(t, err)
	require.EqualValues(t, 0, report.ClippingCount)
	require.Zero(t, report.TotalAVE)
	require.Zero(t, report.PositiveShare)
}

func TestMonitoringService_ListClippingsFiltersByCampaign(t *testing.T) {
	svc := newMonitoringService(t)
	ctx := context.Background()

	campaignID := "campaign-1"
	published := time.Now()
	_, err := svc.AddClipping(ctx, testOrg, ClippingInput{
		Outlet: "A", CampaignID: &campaignID, PublishedAt: &published,
	})
	require.NoError(t, err)
	_, err = svc.AddClipping(ctx, testOrg, ClippingInput{Outlet: "B"})
	require.NoError(t, err)

	scoped, err := svc.ListClippings(ctx, testOrg, ListClippingsOptions{CampaignID: campaignID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	require.Equal(t, "A", scoped[0].Outlet)
}
