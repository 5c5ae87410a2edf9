package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/okayo/invoicing/internal/application/catalog"
	appinvoicing "github.com/okayo/invoicing/internal/application/invoicing"
	apppartner "github.com/okayo/invoicing/internal/application/partner"
	appprinting "github.com/okayo/invoicing/internal/application/printing"
	appreport "github.com/okayo/invoicing/internal/application/report"
	"github.com/okayo/invoicing/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClientService struct{ mock.Mock }

func (m *MockClientService) List(ctx context.Context) ([]apppartner.ClientResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]apppartner.ClientResponse), args.Error(1)
}

func (m *MockClientService) GetByID(ctx context.Context, id int64) (*apppartner.ClientResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apppartner.ClientResponse), args.Error(1)
}

func (m *MockClientService) Create(ctx context.Context, cmd apppartner.CreateClientCommand) (*apppartner.ClientResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apppartner.ClientResponse), args.Error(1)
}

type MockProductService struct{ mock.Mock }

func (m *MockProductService) List(ctx context.Context) ([]appcatalog.ProductResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]appcatalog.ProductResponse), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*appcatalog.ProductResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appcatalog.ProductResponse), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, cmd appcatalog.CreateProductCommand) (*appcatalog.ProductResponse, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appcatalog.ProductResponse), args.Error(1)
}

type MockCatalogService struct{ mock.Mock }

func (m *MockCatalogService) Current(ctx context.Context) ([]appcatalog.CatalogEntryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]appcatalog.CatalogEntryResponse), args.Error(1)
}

func (m *MockCatalogService) History(ctx context.Context, productID int64) ([]appcatalog.PriceHistoryResponse, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]appcatalog.PriceHistoryResponse), args.Error(1)
}

type MockInvoiceService struct{ mock.Mock }

func (m *MockInvoiceService) List(ctx context.Context, q appinvoicing.ListInvoicesQuery) ([]appinvoicing.InvoiceSummaryResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]appinvoicing.InvoiceSummaryResponse), args.Error(1)
}

func (m *MockInvoiceService) GetByID(ctx context.Context, id int64) (*appinvoicing.InvoiceDetailResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appinvoicing.InvoiceDetailResponse), args.Error(1)
}

func (m *MockInvoiceService) Create(ctx context.Context, cmd appinvoicing.CreateInvoiceCommand) (*appinvoicing.CreateInvoiceResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appinvoicing.CreateInvoiceResult), args.Error(1)
}

type MockPrintService struct{ mock.Mock }

func (m *MockPrintService) RenderInvoiceHTML(ctx context.Context, id int64) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockPrintService) RenderInvoicePDF(ctx context.Context, id int64) (*appprinting.PDFDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appprinting.PDFDocument), args.Error(1)
}

func (m *MockPrintService) ArchiveInvoice(ctx context.Context, id int64) (*appprinting.ArchiveResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appprinting.ArchiveResponse), args.Error(1)
}

type MockReportService struct{ mock.Mock }

func (m *MockReportService) Statistics(ctx context.Context, q appreport.StatisticsQuery) (*appreport.StatisticsResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appreport.StatisticsResponse), args.Error(1)
}

func (m *MockReportService) TopClients(ctx context.Context, limit int) ([]appreport.TopClientResponse, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]appreport.TopClientResponse), args.Error(1)
}

func (m *MockReportService) ExportInvoices(ctx context.Context, q appreport.StatisticsQuery) (*appreport.Export, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appreport.Export), args.Error(1)
}

type MockPinger struct{ mock.Mock }

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// newTestRouter returns an engine with the validator configured the way
// the server configures it.
func newTestRouter() *gin.Engine {
	middleware.SetupValidator()
	return gin.New()
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
