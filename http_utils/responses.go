package http_utils

type BaseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type DataResponse struct {
	BaseResponse
	Data interface{} `json:"data"`
}

type ValidationErrorResponse struct {
	BaseResponse
	Errors []string `json:"errors"`
}

func NewErrorResponse(msg string) BaseResponse {
	return BaseResponse{
		Success: false,
		Message: msg,
	}
}

func NewDataResponse(msg string, data interface{}) DataResponse {
	return DataResponse{
		BaseResponse: BaseResponse{
			Success: true,
			Message: msg,
		},
		Data: data,
	}
}
