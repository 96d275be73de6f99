package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gandalf.app/compiler/core/config"
	"gandalf.app/compiler/internal/delegate"
	"gandalf.app/compiler/internal/http/handler"
)

var _ = Describe("DelegateStatusHandler", func() {
	var router *gin.Engine

	setup := func(cfg config.DelegateConfig) {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		dr := delegate.NewRouter(delegate.RouterOptions{
			EnableFast: cfg.EnableFast,
			EnableDeep: cfg.EnableDeep,
			ForceTier:  delegate.Tier(cfg.ForceTier),
		})
		router.GET("/delegate/status", handler.NewDelegateStatusHandler(dr, cfg).Status)
	}

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("reports disabled without an API key", func() {
		setup(config.DelegateConfig{})

		w := get("/delegate/status")

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["enabled"]).To(BeFalse())
		Expect(resp).NotTo(HaveKey("plan"))
	})

	Context("when delegation is configured", func() {
		BeforeEach(func() {
			setup(config.DelegateConfig{
				APIKey:        "sk-test",
				FastModel:     "gpt-4o-mini",
				BalancedModel: "gpt-4o",
				DeepModel:     "o1",
				EnableFast:    true,
				EnableDeep:    true,
			})
		})

		It("returns the model map and a full stage plan", func() {
			w := get("/delegate/status")

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["enabled"]).To(BeTrue())

			models := resp["models"].(map[string]any)
			Expect(models["fast"]).To(Equal("gpt-4o-mini"))
			Expect(models["deep"]).To(Equal("o1"))

			plan := resp["plan"].(map[string]any)
			Expect(plan["classify_intent"]).To(Equal("fast"))
			Expect(plan["generate_ctc"]).To(Equal("deep"))
		})

		It("routes contract generation down at low complexity", func() {
			w := get("/delegate/status?complexity=1")

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			plan := resp["plan"].(map[string]any)
			Expect(plan["generate_ctc"]).To(Equal("balanced"))
		})

		It("rejects complexity outside [1, 5]", func() {
			Expect(get("/delegate/status?complexity=0").Code).To(Equal(http.StatusBadRequest))
			Expect(get("/delegate/status?complexity=6").Code).To(Equal(http.StatusBadRequest))
			Expect(get("/delegate/status?complexity=high").Code).To(Equal(http.StatusBadRequest))
		})
	})
})
