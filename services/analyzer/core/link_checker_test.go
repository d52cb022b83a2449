package core

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/RuvinSL/url-analysis-queue/pkg/errs"
	"github.com/RuvinSL/url-analysis-queue/pkg/httpclient"
	"github.com/RuvinSL/url-analysis-queue/pkg/logger"
	"github.com/RuvinSL/url-analysis-queue/pkg/metrics"
	"github.com/RuvinSL/url-analysis-queue/pkg/mocks"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func internalLinks(urls ...string) []models.Link {
	links := make([]models.Link, len(urls))
	for i, u := range urls {
		links[i] = models.Link{URL: u, Type: models.LinkTypeInternal}
	}
	return links
}

func TestCheckLinks_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	checker := NewConcurrentLinkChecker(mocks.NewMockHTTPClient(ctrl), 5, time.Second, logger.Nop(), mocks.NewMockMetricsCollector(ctrl))

	broken := checker.CheckLinks(context.Background(), nil)

	assert.NotNil(t, broken)
	assert.Empty(t, broken)
}

func TestCheckLinks_Classification(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	collector := mocks.NewMockMetricsCollector(ctrl)
	collector.EXPECT().RecordLinkCheck(gomock.Any(), gomock.Any()).AnyTimes()

	// healthy
	httpClient.EXPECT().Head(gomock.Any(), "https://a.test/ok").Return(&models.HTTPResponse{StatusCode: 200}, nil)
	// redirect counts as reachable
	httpClient.EXPECT().Head(gomock.Any(), "https://a.test/moved").Return(&models.HTTPResponse{StatusCode: 301}, nil)
	// broken
	httpClient.EXPECT().Head(gomock.Any(), "https://a.test/missing").Return(&models.HTTPResponse{StatusCode: 404}, nil)
	// HEAD refused, GET fine
	httpClient.EXPECT().Head(gomock.Any(), "https://a.test/nohead").Return(&models.HTTPResponse{StatusCode: 405}, nil)
	httpClient.EXPECT().Get(gomock.Any(), "https://a.test/nohead").Return(&models.HTTPResponse{StatusCode: 200}, nil)
	// HEAD errors, GET errors
	headErr := &errs.AppError{Kind: errs.Unreachable, Message: "request failed", Cause: errors.New("dial tcp: refused")}
	httpClient.EXPECT().Head(gomock.Any(), "https://down.test").Return(nil, headErr)
	httpClient.EXPECT().Get(gomock.Any(), "https://down.test").Return(nil, headErr)

	checker := NewConcurrentLinkChecker(httpClient, 2, time.Second, logger.Nop(), collector)

	broken := checker.CheckLinks(context.Background(), internalLinks(
		"https://a.test/ok",
		"https://a.test/missing",
		"https://a.test/moved",
		"https://a.test/missing",
		"https://a.test/nohead",
		"https://down.test",
	))

	require.Len(t, broken, 2)
	assert.Equal(t, models.BrokenLink{URL: "https://a.test/missing", StatusCode: 404, Error: "HTTP error: 404 Not Found"}, broken[0])
	assert.Equal(t, "https://down.test", broken[1].URL)
	assert.Equal(t, 0, broken[1].StatusCode)
	assert.Contains(t, broken[1].Error, "Request failed")
}

func TestCheckLinks_RespectsConcurrencyLimit(t *testing.T) {
	var active, peak int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&active, -1)
	}))
	defer server.Close()

	urls := make([]string, 12)
	for i := range urls {
		urls[i] = server.URL + "/page/" + string(rune('a'+i))
	}

	checker := NewConcurrentLinkChecker(httpclient.New(2*time.Second, logger.Nop()), 3, time.Second, logger.Nop(), metrics.NewPrometheusCollector("test"))

	broken := checker.CheckLinks(context.Background(), internalLinks(urls...))

	assert.Empty(t, broken)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
	assert.GreaterOrEqual(t, atomic.LoadInt32(&peak), int32(1))
}

func TestCheckLinks_PerLinkTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	checker := NewConcurrentLinkChecker(httpclient.New(5*time.Second, logger.Nop()), 2, 50*time.Millisecond, logger.Nop(), metrics.NewPrometheusCollector("test"))

	start := time.Now()
	broken := checker.CheckLinks(context.Background(), internalLinks(server.URL+"/slow"))

	require.Len(t, broken, 1)
	assert.Contains(t, broken[0].Error, "Request failed")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestCheckLinks_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	httpClient := mocks.NewMockHTTPClient(ctrl)
	collector := mocks.NewMockMetricsCollector(ctrl)
	collector.EXPECT().RecordLinkCheck(gomock.Any(), gomock.Any()).AnyTimes()
	httpClient.EXPECT().Head(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, url string) (*models.HTTPResponse, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).AnyTimes()
	httpClient.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, url string) (*models.HTTPResponse, error) {
			return nil, ctx.Err()
		}).AnyTimes()

	checker := NewConcurrentLinkChecker(httpClient, 1, time.Minute, logger.Nop(), collector)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	broken := checker.CheckLinks(ctx, internalLinks("https://a.test/1", "https://a.test/2", "https://a.test/3"))

	assert.Len(t, broken, 3)
}

func TestDistinctURLs(t *testing.T) {
	got := distinctURLs(internalLinks("https://a.test", "https://b.test", "https://a.test"))

	assert.Equal(t, []string{"https://a.test", "https://b.test"}, got)
}
