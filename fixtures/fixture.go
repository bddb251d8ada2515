// Package fixtures holds Flagsmith API payloads for the demo's flags.
package fixtures

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
)

const EnvironmentAPIKey = "test_key"
const GreetingValue = "Hi there"

// FlagsJson is a remote-evaluation response with checkout_v2 on, quantum_mode
// off and a greeting value.
const FlagsJson = `
[{
	"id": 1,
	"feature": {
		"id": 1,
		"name": "checkout_v2",
		"created_date": "2024-05-01T09:00:00.000000Z",
		"initial_value": null,
		"description": "New checkout flow",
		"default_enabled": false,
		"type": "STANDARD",
		"project": 1
	},
	"feature_state_value": null,
	"enabled": true,
	"environment": 1,
	"identity": null,
	"feature_segment": null
}, {
	"id": 2,
	"feature": {
		"id": 2,
		"name": "quantum_mode",
		"created_date": "2024-05-01T09:00:00.000000Z",
		"initial_value": null,
		"description": "Experimental quantum features",
		"default_enabled": false,
		"type": "STANDARD",
		"project": 1
	},
	"feature_state_value": null,
	"enabled": false,
	"environment": 1,
	"identity": null,
	"feature_segment": null
}, {
	"id": 3,
	"feature": {
		"id": 3,
		"name": "greeting",
		"created_date": "2024-05-01T09:00:00.000000Z",
		"initial_value": "Hi there",
		"description": "Welcome message",
		"default_enabled": true,
		"type": "STANDARD",
		"project": 1
	},
	"feature_state_value": "Hi there",
	"enabled": true,
	"environment": 1,
	"identity": null,
	"feature_segment": null
}, {
	"id": 4,
	"feature": {
		"id": 4,
		"name": "max_items",
		"created_date": "2024-05-01T09:00:00.000000Z",
		"initial_value": null,
		"description": null,
		"default_enabled": false,
		"type": "STANDARD",
		"project": 1
	},
	"feature_state_value": 42,
	"enabled": true,
	"environment": 1,
	"identity": null,
	"feature_segment": null
}]
`

// EnvironmentJson is an environment document for offline mode with
// quantum_mode on and checkout_v2 off.
const EnvironmentJson = `
{
	"api_key": "B62qaMZNwfiqT76p38ggrQ",
	"project": {
		"name": "Fake App",
		"organisation": {
			"feature_analytics": false,
			"name": "Fake Org",
			"id": 1,
			"persist_trait_data": true,
			"stop_serving_flags": false
		},
		"id": 1,
		"hide_disabled_flags": false,
		"segments": []
	},
	"segment_overrides": [],
	"id": 1,
	"feature_states": [{
		"multivariate_feature_state_values": [],
		"feature_state_value": null,
		"id": 1,
		"featurestate_uuid": "40eb539d-3713-4720-bbd4-829dbef10d51",
		"feature": {
			"name": "checkout_v2",
			"type": "STANDARD",
			"id": 1
		},
		"segment_id": null,
		"enabled": false
	}, {
		"multivariate_feature_state_values": [],
		"feature_state_value": null,
		"id": 2,
		"featurestate_uuid": "5a3c1e2f-8d0b-4c6a-9f2e-1b7d3c4e5f60",
		"feature": {
			"name": "quantum_mode",
			"type": "STANDARD",
			"id": 2
		},
		"segment_id": null,
		"enabled": true
	}, {
		"multivariate_feature_state_values": [],
		"feature_state_value": "Offline hello",
		"id": 3,
		"featurestate_uuid": "9c1f2e3d-4b5a-4c6d-8e7f-0a1b2c3d4e5f",
		"feature": {
			"name": "greeting",
			"type": "STANDARD",
			"id": 3
		},
		"segment_id": null,
		"enabled": true
	}]
}
`

// FlagsServer serves body on /api/v1/flags/ and counts requests. The base URL
// to configure is server.URL + "/api/v1/".
func FlagsServer(status int, body string) (*httptest.Server, *atomic.Int32) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		hits.Add(1)
		if req.URL.Path != "/api/v1/flags/" {
			rw.WriteHeader(http.StatusNotFound)
			return
		}
		if req.Header.Get("X-Environment-Key") != EnvironmentAPIKey {
			rw.WriteHeader(http.StatusUnauthorized)
			return
		}

		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(status)
		_, err := io.WriteString(rw, body)
		if err != nil {
			panic(err)
		}
	}))
	return server, &hits
}
