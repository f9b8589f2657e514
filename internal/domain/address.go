package domain

import "strings"

// AddressCode - пятисоставный государственный идентификатор участка.
// Все пять полей обязательны, bun/ji нормализованы до 4 знаков.
type AddressCode struct {
	SigunguCd string `json:"sigunguCd"`
	BjdongCd  string `json:"bjdongCd"`
	PlatGbCd  string `json:"platGbCd"`
	Bun       string `json:"bun"`
	Ji        string `json:"ji"`
}

// ID - детерминированный идентификатор адреса: пять кодов через дефис.
func (c AddressCode) ID() string {
	return strings.Join([]string{c.SigunguCd, c.BjdongCd, c.PlatGbCd, c.Bun, c.Ji}, "-")
}

// Complete проверяет, что все пять компонентов присутствуют.
func (c AddressCode) Complete() bool {
	return c.SigunguCd != "" && c.BjdongCd != "" && c.PlatGbCd != "" && c.Bun != "" && c.Ji != ""
}

// AddressSearchResult - кандидат из поиска адресов. Живёт только в рамках
// одного запроса, не персистится.
type AddressSearchResult struct {
	ID                 string      `json:"id"`
	RoadAddr           string      `json:"roadAddr"`
	JibunAddr          string      `json:"jibunAddr"`
	ZipNo              string      `json:"zipNo"`
	BuildingName       *string     `json:"buildingName"`
	DetailBuildingName *string     `json:"detailBuildingName"`
	AddressCode        AddressCode `json:"addressCode"`
}

// AddressPage - метаданные пагинации upstream-поиска.
type AddressPage struct {
	CurrentPage  int `json:"currentPage"`
	TotalCount   int `json:"totalCount"`
	CountPerPage int `json:"countPerPage"`
}
