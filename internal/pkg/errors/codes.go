package errors

import "net/http"

// Ошибки пользовательского ввода и аутентификации.
var (
	ErrValidation = New(
		"VALIDATION_ERROR",
		"입력 정보를 확인해주세요.",
		http.StatusBadRequest,
	)

	ErrInvalidRequestBody = New(
		"INVALID_REQUEST_BODY",
		"요청 데이터 형식이 올바르지 않습니다.",
		http.StatusBadRequest,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"로그인이 필요합니다.",
		http.StatusUnauthorized,
	)

	ErrAdminUnauthorized = New(
		"ADMIN_UNAUTHORIZED",
		"관리자 인증이 필요합니다.",
		http.StatusUnauthorized,
	)

	ErrAdminInvalidCredentials = New(
		"ADMIN_INVALID_CREDENTIALS",
		"아이디 또는 비밀번호가 올바르지 않습니다.",
		http.StatusUnauthorized,
	)

	ErrAdminInactive = New(
		"ADMIN_INACTIVE",
		"비활성화된 계정입니다.",
		http.StatusForbidden,
	)

	ErrInvalidOTP = New(
		"INVALID_OTP",
		"인증 코드가 올바르지 않습니다.",
		http.StatusUnauthorized,
	)
)

// Ошибки upstream-сервисов: "сервис недоступен" и "данные не найдены"
// никогда не сливаются в одно сообщение.
var (
	ErrAddressSearchFailed = New(
		"ADDRESS_SEARCH_FAILED",
		"주소 검색 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요.",
		http.StatusBadGateway,
	)

	ErrAddressUpstream = New(
		"ADDRESS_UPSTREAM_ERROR",
		"주소 검색 중 오류가 발생했습니다.",
		http.StatusBadRequest,
	)

	ErrBuildingNotFound = New(
		"BUILDING_NOT_FOUND",
		"해당 주소의 건축물 정보를 찾을 수 없습니다.",
		http.StatusNotFound,
	)

	ErrBuildingServiceUnavailable = New(
		"BUILDING_SERVICE_UNAVAILABLE",
		"건축물대장 서비스가 일시적으로 중단되었습니다. 잠시 후 다시 시도해주세요.",
		http.StatusServiceUnavailable,
	)

	ErrBuildingResponseInvalid = New(
		"BUILDING_RESPONSE_INVALID",
		"건축물 정보 응답을 해석할 수 없습니다. 잠시 후 다시 시도해주세요.",
		http.StatusBadGateway,
	)

	ErrBuildingUpstream = New(
		"BUILDING_UPSTREAM_ERROR",
		"건축물 정보 조회 중 오류가 발생했습니다.",
		http.StatusBadRequest,
	)
)

// Ошибки хранилищ: наружу уходит общий текст, детали остаются в логах.
var (
	ErrConsultationNotFound = New(
		"CONSULTATION_NOT_FOUND",
		"상담 요청을 찾을 수 없습니다.",
		http.StatusNotFound,
	)

	ErrDuplicateConsultation = New(
		"DUPLICATE_CONSULTATION",
		"이미 등록된 상담 요청입니다.",
		http.StatusConflict,
	)

	ErrUserNotFound = New(
		"USER_NOT_FOUND",
		"사용자를 찾을 수 없습니다.",
		http.StatusNotFound,
	)

	ErrAdminNotFound = New(
		"ADMIN_NOT_FOUND",
		"관리자를 찾을 수 없습니다.",
		http.StatusNotFound,
	)

	ErrDuplicateAdmin = New(
		"DUPLICATE_ADMIN",
		"이미 존재하는 아이디입니다.",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"요청 처리 중 오류가 발생했습니다.",
		http.StatusInternalServerError,
	)

	ErrStorageError = New(
		"STORAGE_ERROR",
		"파일 처리 중 오류가 발생했습니다.",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"서버 오류가 발생했습니다.",
		http.StatusInternalServerError,
	)
)
