package utils

import (
	"encoding/json"
	"net/http"

	"github.com/alumni-connect/connect-api/internal/models"
	"gorm.io/datatypes"
)

// WriteJSONResponse writes the uniform {success,message,data,error} envelope.
func WriteJSONResponse(w http.ResponseWriter, status int, success bool, message string, data interface{}, errVal interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.APIResponse{
		Success: success,
		Message: message,
		Data:    data,
		Error:   errVal,
	})
}

func DatatypesJSONFromStrings(ss []string) datatypes.JSON {
	if ss == nil {
		ss = []string{}
	}
	b, _ := json.Marshal(ss)
	return datatypes.JSON(b)
}

func StringsFromDatatypesJSON(j datatypes.JSON) []string {
	var arr []string
	_ = json.Unmarshal([]byte(j), &arr)
	return arr
}

func DatatypesJSONFromMap(m map[string]interface{}) datatypes.JSON {
	if m == nil {
		m = map[string]interface{}{}
	}
	b, _ := json.Marshal(m)
	return datatypes.JSON(b)
}
