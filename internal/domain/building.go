package domain

const (
	// BuildingStatusUnavailable - sentinel в rawData.status: запись-заглушка,
	// подставленная при недоступности реестра зданий. Должен пережить
	// персистенцию и показываться пользователю как мягкое предупреждение.
	BuildingStatusUnavailable = "UNAVAILABLE"

	// MainPurpsNeedsVerification - "требует проверки", основное назначение
	// здания в записи-заглушке.
	MainPurpsNeedsVerification = "확인 필요"
)

// BuildingInfo - сводка из государственного реестра зданий. Числовые поля
// nullable: upstream может вернуть пустую строку, и "нет данных" для площади
// или этажности не равно нулю.
type BuildingInfo struct {
	MainPurpsCdNm  string                 `json:"mainPurpsCdNm"`
	TotArea        *float64               `json:"totArea"`
	PlatArea       *float64               `json:"platArea"`
	GroundFloorCnt *int                   `json:"groundFloorCnt"`
	UgrndFloorCnt  *int                   `json:"ugrndFloorCnt"`
	HhldCnt        *int                   `json:"hhldCnt"`
	FmlyNum        *int                   `json:"fmlyNum"`
	MainBldCnt     *int                   `json:"mainBldCnt"`
	AtchBldCnt     *int                   `json:"atchBldCnt"`
	PlatPlc        *string                `json:"platPlc"`
	AddressInfo    *AddressCode           `json:"addressInfo,omitempty"`
	RawData        map[string]interface{} `json:"rawData"`
}

// IsUnavailable сообщает, является ли запись заглушкой.
func (b *BuildingInfo) IsUnavailable() bool {
	if b == nil || b.RawData == nil {
		return false
	}
	status, ok := b.RawData["status"].(string)
	return ok && status == BuildingStatusUnavailable
}

// FallbackBuildingInfo строит запись-заглушку для адреса: реестр зданий -
// best-effort обогащение, его недоступность не блокирует подачу заявки.
func FallbackBuildingInfo(code AddressCode) BuildingInfo {
	addr := code
	return BuildingInfo{
		MainPurpsCdNm: MainPurpsNeedsVerification,
		AddressInfo:   &addr,
		RawData:       map[string]interface{}{"status": BuildingStatusUnavailable},
	}
}

// BuildingSummary - компактное представление для отображения.
type BuildingSummary struct {
	MainPurpose string        `json:"mainPurpose"`
	TotalArea   *float64      `json:"totalArea"`
	PlotArea    *float64      `json:"plotArea"`
	Floors      BuildingFloor `json:"floors"`
	Households  *int          `json:"households"`
}

type BuildingFloor struct {
	Ground      *int `json:"ground"`
	Underground *int `json:"underground"`
}
