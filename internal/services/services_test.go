package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mars_shop/internal/models"
)

func TestRenderOrderHTML(t *testing.T) {
	order := models.Order{
		ID:              "o1",
		CustomerName:    "Sami <b>",
		CustomerPhone:   "+216",
		CustomerAddress: "Tunis",
		Items: []models.OrderItem{{
			ProductID: "6",
			Quantity:  2,
			Price:     decimal.NewFromInt(120),
			Product:   models.Product{Name: "Yoga Mat Pro"},
		}},
		Total: decimal.NewFromInt(240),
	}

	html, err := RenderOrderHTML(order, "https://marsshop.tn/orders/o1")
	require.NoError(t, err)
	assert.Contains(t, html, "Yoga Mat Pro")
	assert.Contains(t, html, "240.000 TND")
	assert.Contains(t, html, "120.000 TND")
	assert.Contains(t, html, "Sami &lt;b&gt;")
	assert.Contains(t, html, "https://marsshop.tn/orders/o1")
}

func newImageStore(t *testing.T) *ImageStore {
	t.Helper()
	client, err := minio.New("localhost:9000", &minio.Options{
		Creds:  credentials.NewStaticV4("key", "secret", ""),
		Region: "us-east-1",
	})
	require.NoError(t, err)
	return NewImageStore(client, "mars-shop-images")
}

func TestImageStoreRejectsUnknownTypes(t *testing.T) {
	store := newImageStore(t)
	_, err := store.Upload(context.Background(), "x.exe", strings.NewReader("MZ"), 2, "application/octet-stream")
	assert.ErrorAs(t, err, &ErrUnsupportedImage{})
}

func TestImageStoreSignedURL(t *testing.T) {
	store := newImageStore(t)
	ctx := context.Background()

	external := "https://images.unsplash.com/photo-1"
	got, err := store.SignedURL(ctx, external, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, external, got)

	got, err = store.SignedURL(ctx, "http://localhost:9000/mars-shop-images/products/a.png", time.Hour)
	require.NoError(t, err)
	assert.Contains(t, got, "/mars-shop-images/products/a.png")
	assert.Contains(t, got, "X-Amz-Signature=")
}

func newElastic(t *testing.T, handler http.HandlerFunc) *ProductIndex {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewProductIndex(client, "")
}

func TestProductIndexSearch(t *testing.T) {
	var body map[string]any
	index := newElastic(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/_search", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"9"},{"_id":"1"}]}}`))
	})

	ids, err := index.Search(context.Background(), "laptop", 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"9", "1"}, ids)
	assert.Contains(t, body, "query")
}

func TestProductIndexIndexAndErrors(t *testing.T) {
	var paths []string
	index := newElastic(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"result":"not_found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	ctx := context.Background()
	require.NoError(t, index.Index(ctx, models.Product{ID: "6", Name: "Yoga Mat Pro", Price: decimal.NewFromInt(120)}))
	require.NoError(t, index.Delete(ctx, "404"))
	assert.Equal(t, []string{"PUT /products/_doc/6", "DELETE /products/_doc/404"}, paths)
}
