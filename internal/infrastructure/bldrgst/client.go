package bldrgst

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/consultation-service/internal/config"
	"github.com/consultation-service/internal/domain"
	"github.com/consultation-service/internal/domain/repository"
	apperrors "github.com/consultation-service/internal/pkg/errors"
	"github.com/consultation-service/internal/pkg/utils"
	"go.uber.org/zap"
)

const (
	titleInfoPath = "/1613000/BldRgstService_v2/getBrTitleInfo"
	userAgent     = "archLegal/1.0"

	// upstreamOK - код успешного ответа реестра зданий.
	upstreamOK = "00"

	// maintenanceMarker - маркер планового обслуживания в теле ответа.
	maintenanceMarker = "시스템 점검"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient создает новый клиент реестра зданий (건축물대장 총괄표제부)
func NewClient(cfg *config.BldRgstConfig, logger *zap.Logger) repository.BuildingRegistryRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

type titleResponse struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			Items      []json.RawMessage `json:"items"`
			NumOfRows  int               `json:"numOfRows"`
			PageNo     int               `json:"pageNo"`
			TotalCount int               `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

type titleItem struct {
	MainPurpsCdNm  string `json:"mainPurpsCdNm"`
	TotArea        string `json:"totArea"`
	PlatArea       string `json:"platArea"`
	GroundFloorCnt string `json:"groundFloorCnt"`
	UgrndFloorCnt  string `json:"ugrndFloorCnt"`
	HhldCnt        string `json:"hhldCnt"`
	FmlyNum        string `json:"fmlyNum"`
	MainBldCnt     string `json:"mainBldCnt"`
	AtchBldCnt     string `json:"atchBldCnt"`
	PlatPlc        string `json:"platPlc"`
	SigunguCd      string `json:"sigunguCd"`
	BjdongCd       string `json:"bjdongCd"`
	PlatGbCd       string `json:"platGbCd"`
	Bun            string `json:"bun"`
	Ji             string `json:"ji"`
}

// GetTitleInfo запрашивает первую страницу реестра по пяти кодам адреса
// и берёт первую строку как авторитетную.
func (c *client) GetTitleInfo(ctx context.Context, code domain.AddressCode) (*domain.BuildingInfo, error) {
	params := url.Values{}
	params.Set("serviceKey", c.apiKey)
	params.Set("sigunguCd", code.SigunguCd)
	params.Set("bjdongCd", code.BjdongCd)
	params.Set("platGbCd", code.PlatGbCd)
	params.Set("bun", code.Bun)
	params.Set("ji", code.Ji)
	params.Set("_type", "json")
	params.Set("numOfRows", "10")
	params.Set("pageNo", "1")

	reqURL := c.baseURL + titleInfoPath + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create building registry request", zap.Error(err))
		return nil, apperrors.ErrBuildingServiceUnavailable
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute building registry request", zap.Error(err))
		return nil, apperrors.ErrBuildingServiceUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read building registry response", zap.Error(err))
		return nil, apperrors.ErrBuildingServiceUnavailable
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Building registry API returned error",
			zap.Int("status_code", resp.StatusCode))

		switch {
		case strings.Contains(string(body), maintenanceMarker):
			return nil, apperrors.ErrBuildingServiceUnavailable
		case resp.StatusCode == http.StatusNotFound:
			// Upstream отвечает 404 без строк, когда здания нет в реестре -
			// это "данные не найдены", а не сбой сервиса
			return nil, apperrors.ErrBuildingNotFound
		case resp.StatusCode >= http.StatusInternalServerError:
			return nil, apperrors.ErrBuildingServiceUnavailable
		default:
			return nil, apperrors.ErrBuildingUpstream
		}
	}

	var titleResp titleResponse
	if err := json.Unmarshal(body, &titleResp); err != nil {
		// Upstream периодически отдаёт XML или HTML вместо JSON
		c.logger.Error("Failed to parse building registry response",
			zap.Error(err),
			zap.ByteString("body_prefix", prefix(body, 256)))
		return nil, apperrors.ErrBuildingResponseInvalid
	}

	header := titleResp.Response.Header
	if header.ResultCode != upstreamOK {
		c.logger.Warn("Building registry API returned non-OK result",
			zap.String("code", header.ResultCode),
			zap.String("message", header.ResultMsg))
		message := header.ResultMsg
		if message == "" {
			message = apperrors.ErrBuildingUpstream.Message
		}
		return nil, apperrors.ErrBuildingUpstream.
			WithMessage(message).
			WithDetails(map[string]interface{}{"code": header.ResultCode})
	}

	if len(titleResp.Response.Body.Items) == 0 {
		return nil, apperrors.ErrBuildingNotFound
	}

	raw := titleResp.Response.Body.Items[0]

	var item titleItem
	if err := json.Unmarshal(raw, &item); err != nil {
		c.logger.Error("Failed to parse building registry item", zap.Error(err))
		return nil, apperrors.ErrBuildingResponseInvalid
	}

	// Полный ответ upstream сохраняется для дальнейшего использования
	var rawData map[string]interface{}
	if err := json.Unmarshal(raw, &rawData); err != nil {
		rawData = map[string]interface{}{}
	}

	mainPurps := item.MainPurpsCdNm
	if mainPurps == "" {
		mainPurps = "정보없음"
	}

	info := &domain.BuildingInfo{
		MainPurpsCdNm:  mainPurps,
		TotArea:        utils.ParseNullableFloat(item.TotArea),
		PlatArea:       utils.ParseNullableFloat(item.PlatArea),
		GroundFloorCnt: utils.ParseNullableInt(item.GroundFloorCnt),
		UgrndFloorCnt:  utils.ParseNullableInt(item.UgrndFloorCnt),
		HhldCnt:        utils.ParseNullableInt(item.HhldCnt),
		FmlyNum:        utils.ParseNullableInt(item.FmlyNum),
		MainBldCnt:     utils.ParseNullableInt(item.MainBldCnt),
		AtchBldCnt:     utils.ParseNullableInt(item.AtchBldCnt),
		AddressInfo: &domain.AddressCode{
			SigunguCd: item.SigunguCd,
			BjdongCd:  item.BjdongCd,
			PlatGbCd:  item.PlatGbCd,
			Bun:       item.Bun,
			Ji:        item.Ji,
		},
		RawData: rawData,
	}
	if item.PlatPlc != "" {
		info.PlatPlc = &item.PlatPlc
	}

	return info, nil
}

func prefix(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
