package bind

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/anzhiyu-c/imalink-schemas/pkg/constant"
	"github.com/anzhiyu-c/imalink-schemas/pkg/contract"
	"github.com/anzhiyu-c/imalink-schemas/pkg/domain/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/photos", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    []json.RawMessage `json:"data"`
}

func TestValidateStruct(t *testing.T) {
	v := Validator{}

	t.Run("nil 与非结构体直接通过", func(t *testing.T) {
		var p *model.ImageFileCreate
		if err := v.ValidateStruct(nil); err != nil {
			t.Errorf("nil: %v", err)
		}
		if err := v.ValidateStruct(p); err != nil {
			t.Errorf("nil 指针: %v", err)
		}
		if err := v.ValidateStruct(42); err != nil {
			t.Errorf("int: %v", err)
		}
	})

	t.Run("结构体指针", func(t *testing.T) {
		err := v.ValidateStruct(&model.ImageFileCreate{FileSize: -1})
		var ve *contract.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("期望 ValidationError，实际为 %v", err)
		}
		if _, ok := ve.Field("filename"); !ok {
			t.Errorf("缺少 filename 错误: %v", ve)
		}
		if _, ok := ve.Field("file_size"); !ok {
			t.Errorf("缺少 file_size 错误: %v", ve)
		}
	})

	t.Run("切片逐个校验", func(t *testing.T) {
		files := []model.ImageFileCreate{{Filename: "a.jpg"}, {Filename: ""}}
		if err := v.ValidateStruct(&files); !errors.Is(err, constant.ErrValidation) {
			t.Errorf("期望校验错误，实际为 %v", err)
		}
		if err := v.ValidateStruct(files[:1]); err != nil {
			t.Errorf("合法切片不应失败: %v", err)
		}
	})

	t.Run("Engine 返回契约校验器", func(t *testing.T) {
		if _, ok := v.Engine().(*validator.Validate); !ok {
			t.Errorf("Engine() 类型为 %T", v.Engine())
		}
	})
}

func TestInstall(t *testing.T) {
	old := binding.Validator
	t.Cleanup(func() { binding.Validator = old })
	Install()

	c, _ := newContext(`{"filename":"","file_size":10}`)
	var f model.ImageFileCreate
	err := c.ShouldBindJSON(&f)
	var ve *contract.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("ShouldBindJSON 应返回 ValidationError，实际为 %v", err)
	}
	if fe, ok := ve.Field("filename"); !ok || fe.Rule != "required" {
		t.Errorf("filename 错误 = %+v", fe)
	}
}

func TestBindJSON(t *testing.T) {
	t.Run("应用默认值", func(t *testing.T) {
		body := `{"hothash":"h1","hotpreview":"cHJl","user_id":1,"width":10,"height":10,
			"image_file_list":[{"filename":"a.jpg","file_size":100}]}`
		c, _ := newContext(body)
		p, err := BindJSON[model.PhotoCreate](c)
		if err != nil {
			t.Fatalf("BindJSON 失败: %v", err)
		}
		if p.Visibility != constant.VisibilityPrivate || p.Rating != 0 {
			t.Errorf("默认值未生效: visibility=%q rating=%d", p.Visibility, p.Rating)
		}
	})

	t.Run("显式 null 与缺失", func(t *testing.T) {
		c, _ := newContext(`{"rating":3,"author_id":null}`)
		u, err := BindJSON[model.PhotoUpdate](c)
		if err != nil {
			t.Fatalf("BindJSON 失败: %v", err)
		}
		if v, ok := u.Rating.Get(); !ok || v != 3 {
			t.Errorf("rating = %v, %v", v, ok)
		}
		if !u.AuthorID.IsNull() {
			t.Error("author_id 应为显式 null")
		}
		if u.StackID.IsSet() {
			t.Error("stack_id 未出现，不应被设置")
		}
	})
}

func TestJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantOK   bool
	}{
		{name: "合法请求", body: `{"filename":"a.jpg","file_size":1}`, wantOK: true},
		{name: "字段校验失败", body: `{"filename":"","file_size":-1}`, wantCode: http.StatusUnprocessableEntity},
		{name: "类型不匹配", body: `{"filename":"a.jpg","file_size":"big"}`, wantCode: http.StatusUnprocessableEntity},
		{name: "JSON 格式错误", body: `{"filename":`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext(tt.body)
			f, ok := JSON[model.ImageFileCreate](c)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if tt.wantOK {
				if f == nil || f.Filename != "a.jpg" {
					t.Errorf("结果 = %+v", f)
				}
				if c.IsAborted() {
					t.Error("成功时不应中止请求")
				}
				return
			}
			if !c.IsAborted() {
				t.Error("失败时应中止请求")
			}
			if w.Code != tt.wantCode {
				t.Errorf("状态码 = %d, want %d", w.Code, tt.wantCode)
			}
			var resp envelope
			if tt.wantCode == http.StatusUnprocessableEntity {
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("解析响应失败: %v", err)
				}
				if resp.Code != tt.wantCode || len(resp.Data) == 0 {
					t.Errorf("响应 = %s", w.Body.String())
				}
			}
		})
	}
}
