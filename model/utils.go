package model

import (
	"bytes"
	"encoding/base32"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/pborman/uuid"
)

// TranslateFunc resolves a message id and its template params into a user facing string.
type TranslateFunc func(translationID string, params map[string]interface{}) string

var translateFunc TranslateFunc

func AppErrorInit(t TranslateFunc) {
	translateFunc = t
}

type AppError struct {
	Id            string `json:"id"`
	Message       string `json:"message"` // for users
	DetailedError string `json:"detailed_error"`
	RequestId     string `json:"request_id,omitempty"` // same value of HEADER_REQUEST_ID header
	StatusCode    int    `json:"status_code,omitempty"`
	Where         string `json:"-"`
	params        map[string]interface{}
}

func (er *AppError) Error() string {
	return er.Where + ": " + er.Message + ", " + er.DetailedError
}

func (er *AppError) Translate(T TranslateFunc) {
	if T == nil {
		er.Message = er.Id
		return
	}

	er.Message = T(er.Id, er.params)
}

func (er *AppError) ToJson() string {
	b, _ := json.Marshal(er)
	return string(b)
}

func NewAppError(where string, id string, params map[string]interface{}, details string, status int) *AppError {
	ap := &AppError{}
	ap.Id = id
	ap.params = params
	ap.Message = id
	ap.Where = where
	ap.DetailedError = details
	ap.StatusCode = status

	ap.Translate(translateFunc)

	return ap
}

// AppErrorFromJson decodes an error body sent by the server. Both the AppError shape and
// the {"error": ...} / {"detail": ...} bodies of the blog API are understood.
func AppErrorFromJson(data io.Reader) *AppError {
	str := ""
	b, rerr := ioutil.ReadAll(data)
	if rerr != nil {
		str = rerr.Error()
	} else {
		str = string(b)
	}

	var er AppError
	if err := json.NewDecoder(strings.NewReader(str)).Decode(&er); err == nil && er.Id != "" {
		return &er
	}

	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(strings.NewReader(str)).Decode(&body); err == nil && (body.Error != "" || body.Detail != "") {
		details := body.Error
		if details == "" {
			details = body.Detail
		}
		return NewAppError("AppErrorFromJson", "model.client.server_error.app_error", nil, details, http.StatusInternalServerError)
	}

	return NewAppError("AppErrorFromJson", "model.utils.decode_json.app_error", nil, "body: "+str, http.StatusInternalServerError)
}

var encoding = base32.NewEncoding("ykvz9hnx81arj3dml762oq0wgi5pcube")

func NewId() string {
	var b bytes.Buffer
	encoder := base32.NewEncoder(encoding, &b)
	encoder.Write(uuid.NewRandom())
	encoder.Close()
	b.Truncate(26)
	return b.String()
}

func NewBool(b bool) *bool       { return &b }
func NewInt(n int) *int          { return &n }
func NewString(s string) *string { return &s }
