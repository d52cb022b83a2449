package core

import (
	"context"
	"errors"
	"testing"

	"github.com/RuvinSL/url-analysis-queue/pkg/errs"
	"github.com/RuvinSL/url-analysis-queue/pkg/mocks"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type analyzerMocks struct {
	httpClient  *mocks.MockHTTPClient
	htmlParser  *mocks.MockHTMLParser
	linkChecker *mocks.MockLinkChecker
	metrics     *mocks.MockMetricsCollector
	logger      *mocks.MockLogger
}

func newAnalyzerMocks(ctrl *gomock.Controller) analyzerMocks {
	m := analyzerMocks{
		httpClient:  mocks.NewMockHTTPClient(ctrl),
		htmlParser:  mocks.NewMockHTMLParser(ctrl),
		linkChecker: mocks.NewMockLinkChecker(ctrl),
		metrics:     mocks.NewMockMetricsCollector(ctrl),
		logger:      mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	m.logger.EXPECT().Error(gomock.Any(), gomock.Any()).AnyTimes()
	return m
}

func (m analyzerMocks) analyzer() *Analyzer {
	return NewAnalyzer(m.httpClient, m.htmlParser, m.linkChecker, m.logger, m.metrics)
}

func TestAnalyzer_AnalyzeURL_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m := newAnalyzerMocks(ctrl)

	body := []byte("<html><head><title>Example</title></head><body><h1>Test</h1></body></html>")
	links := []models.Link{
		{URL: "https://example.com/page1", Type: models.LinkTypeInternal},
		{URL: "https://example.com/page2", Type: models.LinkTypeInternal},
		{URL: "https://external.com", Type: models.LinkTypeExternal},
	}
	broken := []models.BrokenLink{{URL: "https://example.com/page2", StatusCode: 404, Error: "HTTP error: 404 Not Found"}}

	m.httpClient.EXPECT().Get(gomock.Any(), "https://example.com").
		Return(&models.HTTPResponse{StatusCode: 200, Body: body}, nil)
	m.htmlParser.EXPECT().ParseHTML(gomock.Any(), body, "https://example.com").
		Return(&models.ParsedHTML{
			Title:         "Example",
			HTMLVersion:   "HTML5",
			HeadingCounts: map[string]int{"H1": 1},
			Links:         links,
			HasLoginForm:  true,
		}, nil)
	m.linkChecker.EXPECT().CheckLinks(gomock.Any(), links).Return(broken)
	m.metrics.EXPECT().RecordAnalysis(true, gomock.Any()).Times(1)

	result, err := m.analyzer().AnalyzeURL(context.Background(), "https://example.com")

	require.NoError(t, err)
	assert.Equal(t, "Example", *result.PageTitle)
	assert.Equal(t, "HTML5", *result.HTMLVersion)
	assert.Equal(t, 2, *result.InternalLinks)
	assert.Equal(t, 1, *result.ExternalLinks)
	assert.Equal(t, 1, *result.BrokenLinks)
	assert.True(t, *result.HasLoginForm)
	assert.Equal(t, map[string]int{"H1": 1}, result.HeadingCounts)
	assert.Equal(t, broken, result.BrokenLinkDetails)
	require.NotNil(t, result.ProcessingTime)
	assert.GreaterOrEqual(t, *result.ProcessingTime, 0.0)
	assert.Empty(t, result.Error)
}

func TestAnalyzer_AnalyzeURL_Failures(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		setupMocks func(m analyzerMocks)
		wantKind   errs.Kind
		wantStatus int
	}{
		{
			name:       "invalid url",
			url:        "not-a-url",
			setupMocks: func(m analyzerMocks) {},
			wantKind:   errs.InvalidInput,
		},
		{
			name:       "unsupported scheme",
			url:        "ftp://example.com",
			setupMocks: func(m analyzerMocks) {},
			wantKind:   errs.InvalidInput,
		},
		{
			name: "unreachable",
			url:  "https://down.test",
			setupMocks: func(m analyzerMocks) {
				m.httpClient.EXPECT().Get(gomock.Any(), "https://down.test").
					Return(nil, &errs.AppError{Kind: errs.Unreachable, Message: "request failed", Cause: errors.New("connection refused")})
			},
			wantKind: errs.Unreachable,
		},
		{
			name: "timeout",
			url:  "https://slow.test",
			setupMocks: func(m analyzerMocks) {
				m.httpClient.EXPECT().Get(gomock.Any(), "https://slow.test").
					Return(nil, &errs.AppError{Kind: errs.Timeout, Message: "request timed out", Cause: context.DeadlineExceeded})
			},
			wantKind: errs.Timeout,
		},
		{
			name: "upstream 404",
			url:  "https://example.com/missing",
			setupMocks: func(m analyzerMocks) {
				m.httpClient.EXPECT().Get(gomock.Any(), "https://example.com/missing").
					Return(&models.HTTPResponse{StatusCode: 404}, nil)
			},
			wantKind:   errs.Unreachable,
			wantStatus: 404,
		},
		{
			name: "parse failure",
			url:  "https://example.com",
			setupMocks: func(m analyzerMocks) {
				m.httpClient.EXPECT().Get(gomock.Any(), "https://example.com").
					Return(&models.HTTPResponse{StatusCode: 200, Body: []byte("<html>")}, nil)
				m.htmlParser.EXPECT().ParseHTML(gomock.Any(), gomock.Any(), "https://example.com").
					Return(nil, errors.New("boom"))
			},
			wantKind: errs.ParsingFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			m := newAnalyzerMocks(ctrl)
			tt.setupMocks(m)
			m.metrics.EXPECT().RecordAnalysis(false, gomock.Any()).Times(1)

			result, err := m.analyzer().AnalyzeURL(context.Background(), tt.url)

			assert.Nil(t, result)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, errs.KindOf(err))

			if tt.wantStatus != 0 {
				var appErr *errs.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, tt.wantStatus, appErr.UpstreamStatus)
			}
		})
	}
}

func TestAnalyzer_AnalyzeURL_ContextCancelledDuringLinkCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m := newAnalyzerMocks(ctrl)

	ctx, cancel := context.WithCancel(context.Background())

	m.httpClient.EXPECT().Get(gomock.Any(), "https://example.com").
		Return(&models.HTTPResponse{StatusCode: 200, Body: []byte("<html></html>")}, nil)
	m.htmlParser.EXPECT().ParseHTML(gomock.Any(), gomock.Any(), "https://example.com").
		Return(&models.ParsedHTML{HeadingCounts: map[string]int{}}, nil)
	m.linkChecker.EXPECT().CheckLinks(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, links []models.Link) []models.BrokenLink {
			cancel()
			return nil
		})
	m.metrics.EXPECT().RecordAnalysis(false, gomock.Any()).Times(1)

	_, err := m.analyzer().AnalyzeURL(ctx, "https://example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCountLinks(t *testing.T) {
	internal, external := countLinks([]models.Link{
		{URL: "https://a.test/1", Type: models.LinkTypeInternal},
		{URL: "https://a.test/1", Type: models.LinkTypeInternal},
		{URL: "https://b.test", Type: models.LinkTypeExternal},
	})

	assert.Equal(t, 2, internal)
	assert.Equal(t, 1, external)
}
