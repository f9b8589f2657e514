package juso

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/consultation-service/internal/config"
	"github.com/consultation-service/internal/domain"
	"github.com/consultation-service/internal/domain/repository"
	apperrors "github.com/consultation-service/internal/pkg/errors"
	"github.com/consultation-service/internal/pkg/utils"
	"go.uber.org/zap"
)

const (
	searchPath   = "/addrlink/addrLinkApi.do"
	countPerPage = 10
	userAgent    = "archLegal/1.0"

	// upstreamOK - код "без ошибок" в ответе juso API.
	upstreamOK = "0"
)

// Форма записи в ответе upstream. API наблюдалось в двух вариантах:
// с уже разделёнными кодами и с комбинированным административным кодом.
type itemShape int

const (
	shapeUnknown itemShape = iota
	shapeSplitCodes
	shapeAdmCd
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient создает новый клиент для API поиска адресов
func NewClient(cfg *config.JusoConfig, logger *zap.Logger) repository.AddressLookupRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

type jusoItem struct {
	RoadAddr    string `json:"roadAddr"`
	JibunAddr   string `json:"jibunAddr"`
	ZipNo       string `json:"zipNo"`
	BdNm        string `json:"bdNm"`
	DetBdNmList string `json:"detBdNmList"`

	// Форма с разделёнными кодами
	SigunguCd string `json:"sigunguCd"`
	BjdongCd  string `json:"bjdongCd"`
	PlatGbCd  string `json:"platGbCd"`
	Bun       string `json:"bun"`
	Ji        string `json:"ji"`

	// Форма с комбинированным административным кодом
	AdmCd    string `json:"admCd"`
	MtYn     string `json:"mtYn"`
	LnbrMnnm string `json:"lnbrMnnm"`
	LnbrSlno string `json:"lnbrSlno"`
}

type jusoResponse struct {
	Results struct {
		Common struct {
			ErrorCode    string `json:"errorCode"`
			ErrorMessage string `json:"errorMessage"`
			CurrentPage  string `json:"currentPage"`
			TotalCount   string `json:"totalCount"`
			CountPerPage string `json:"countPerPage"`
		} `json:"common"`
		Juso []jusoItem `json:"juso"`
	} `json:"results"`
}

// Search выполняет поиск адресов по свободному тексту
func (c *client) Search(ctx context.Context, query string, page int) ([]*domain.AddressSearchResult, *domain.AddressPage, error) {
	params := url.Values{}
	params.Set("confmKey", c.apiKey)
	params.Set("keyword", query)
	params.Set("resultType", "json")
	params.Set("countPerPage", strconv.Itoa(countPerPage))
	params.Set("currentPage", strconv.Itoa(page))

	reqURL := c.baseURL + searchPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create juso request", zap.Error(err))
		return nil, nil, apperrors.ErrAddressSearchFailed
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute juso request", zap.Error(err))
		return nil, nil, apperrors.ErrAddressSearchFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Juso API returned error",
			zap.Int("status_code", resp.StatusCode))
		return nil, nil, apperrors.ErrAddressSearchFailed
	}

	var jusoResp jusoResponse
	if err := json.NewDecoder(resp.Body).Decode(&jusoResp); err != nil {
		c.logger.Error("Failed to decode juso response", zap.Error(err))
		return nil, nil, apperrors.ErrAddressSearchFailed
	}

	common := jusoResp.Results.Common
	if common.ErrorCode != upstreamOK {
		// Сообщение upstream пробрасывается как есть вместе с кодом
		c.logger.Warn("Juso API returned non-zero error code",
			zap.String("code", common.ErrorCode),
			zap.String("message", common.ErrorMessage))
		message := common.ErrorMessage
		if message == "" {
			message = apperrors.ErrAddressUpstream.Message
		}
		return nil, nil, apperrors.ErrAddressUpstream.
			WithMessage(message).
			WithDetails(map[string]interface{}{"code": common.ErrorCode})
	}

	results := make([]*domain.AddressSearchResult, 0, len(jusoResp.Results.Juso))
	for _, item := range jusoResp.Results.Juso {
		normalized := normalizeItem(item)
		if normalized == nil {
			// Записи с неполными кодами отбрасываются, а не отдаются
			// как частичные совпадения
			c.logger.Debug("Dropping address item with incomplete codes",
				zap.String("road_addr", item.RoadAddr))
			continue
		}
		results = append(results, normalized)
	}

	pagination := &domain.AddressPage{
		CurrentPage:  atoiOrZero(common.CurrentPage),
		TotalCount:   atoiOrZero(common.TotalCount),
		CountPerPage: atoiOrZero(common.CountPerPage),
	}

	c.logger.Debug("Juso search completed",
		zap.Int("raw_count", len(jusoResp.Results.Juso)),
		zap.Int("result_count", len(results)))

	return results, pagination, nil
}

// normalizeItem приводит обе наблюдаемые формы ответа к каноническому
// AddressCode. Единственное место, где система знает о форме upstream.
func normalizeItem(item jusoItem) *domain.AddressSearchResult {
	var code domain.AddressCode

	switch detectShape(item) {
	case shapeSplitCodes:
		code = domain.AddressCode{
			SigunguCd: item.SigunguCd,
			BjdongCd:  item.BjdongCd,
			PlatGbCd:  item.PlatGbCd,
			Bun:       item.Bun,
			Ji:        item.Ji,
		}
	case shapeAdmCd:
		// Первые 5 знаков административного кода - сигунгу, остаток -
		// поджон. Номера участков приходят без ведущих нулей.
		code = domain.AddressCode{
			SigunguCd: item.AdmCd[:5],
			BjdongCd:  item.AdmCd[5:],
			PlatGbCd:  item.MtYn,
			Bun:       utils.PadLotNumber(item.LnbrMnnm),
			Ji:        utils.PadLotNumber(item.LnbrSlno),
		}
	default:
		return nil
	}

	if !code.Complete() {
		return nil
	}

	result := &domain.AddressSearchResult{
		ID:          code.ID(),
		RoadAddr:    item.RoadAddr,
		JibunAddr:   item.JibunAddr,
		ZipNo:       item.ZipNo,
		AddressCode: code,
	}
	if item.BdNm != "" {
		result.BuildingName = &item.BdNm
	}
	if item.DetBdNmList != "" {
		result.DetailBuildingName = &item.DetBdNmList
	}
	return result
}

func detectShape(item jusoItem) itemShape {
	if item.SigunguCd != "" && item.BjdongCd != "" {
		return shapeSplitCodes
	}
	if len(item.AdmCd) > 5 && item.MtYn != "" {
		return shapeAdmCd
	}
	return shapeUnknown
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
