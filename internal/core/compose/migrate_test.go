package compose

import (
	"testing"

	"github.com/artpar/decomposer/internal/core/document"
	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Version One Tests
// =============================================================================

func TestMigrate_WrapsVersionOne(t *testing.T) {
	doc := mustLoad(t, `
web:
  image: nginx
  ports:
    - "80:80"
db:
  build: ./db
`)
	assert.Equal(t, []string{"web", "db"}, document.AsMap(doc.Services).Keys())
}

func TestMigrate_LeavesOtherDocumentsAlone(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"versioned", "version: '2'\nweb:\n  image: nginx\n"},
		{"not a service", "web:\n  image: nginx\nx-meta:\n  owner: me\n"},
		{"scalar value", "web:\n  image: nginx\nname: demo\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustLoad(t, tt.content)
			assert.Nil(t, doc.Services)
		})
	}
}

// =============================================================================
// Legacy Key Tests
// =============================================================================

func TestMigrate_NetToNetworkMode(t *testing.T) {
	doc := mustLoad(t, `
version: '2'
services:
  app:
    image: app
    net: host
    restart: always
`)
	svc := service(t, doc, "app")
	assert.Equal(t, []string{"image", "network_mode", "restart"}, svc.Keys())
	assert.Equal(t, document.String("host"), svc.Value("network_mode"))
}

func TestMigrate_ResourceKeysIntoDeploy(t *testing.T) {
	doc := mustLoad(t, `
services:
  app:
    mem_limit: 1g
    image: app
    cpus: 0.5
    mem_reservation: 512m
    pids_limit: 100
`)
	svc := service(t, doc, "app")
	assert.Equal(t, []string{"deploy", "image"}, svc.Keys())

	assert.Equal(t, document.String("1g"), document.ParsePath("deploy/resources/limits/memory").Resolve(svc))
	assert.Equal(t, document.Number("0.5"), document.ParsePath("deploy/resources/limits/cpus").Resolve(svc))
	assert.Equal(t, document.Number("100"), document.ParsePath("deploy/resources/limits/pids").Resolve(svc))
	assert.Equal(t, document.String("512m"), document.ParsePath("deploy/resources/reservations/memory").Resolve(svc))
}

func TestMigrate_VolumeFromSpelling(t *testing.T) {
	doc := mustLoad(t, `
services:
  app:
    image: app
    volume_from:
      - other
    restart: always
`)
	svc := service(t, doc, "app")
	assert.Equal(t, []string{"image", "volumes_from", "restart"}, svc.Keys())
	assert.Equal(t, document.Sequence{document.String("other")}, svc.Value("volumes_from"))
}

func TestMigrate_ExistingDeployWins(t *testing.T) {
	doc := mustLoad(t, `
services:
  app:
    mem_limit: 1g
    image: app
    deploy:
      resources:
        limits:
          memory: 2g
      replicas: 2
`)
	svc := service(t, doc, "app")
	assert.Equal(t, []string{"image", "deploy"}, svc.Keys())
	assert.Equal(t, document.String("2g"), document.ParsePath("deploy/resources/limits/memory").Resolve(svc))
	assert.Equal(t, document.Number("2"), document.ParsePath("deploy/replicas").Resolve(svc))
}

func TestMigrate_ExplicitNetworkModeWins(t *testing.T) {
	doc := mustLoad(t, `
services:
  app:
    net: bridge
    network_mode: host
    image: app
`)
	svc := service(t, doc, "app")
	assert.Equal(t, []string{"network_mode", "image"}, svc.Keys())
	assert.Equal(t, document.String("host"), svc.Value("network_mode"))
}

func TestMigrate_DoesNotModifyInput(t *testing.T) {
	limits := document.NewMap(document.Entry{Key: "memory", Value: document.String("2g")})
	svc := document.NewMap(
		document.Entry{Key: "cpus", Value: document.Number("1")},
		document.Entry{Key: "deploy", Value: document.NewMap(
			document.Entry{Key: "resources", Value: document.NewMap(
				document.Entry{Key: "limits", Value: limits},
			)},
		)},
	)
	root := document.NewMap(document.Entry{Key: "services", Value: document.NewMap(
		document.Entry{Key: "app", Value: svc},
	)})

	out := Migrate(root)

	assert.Equal(t, []string{"memory"}, limits.Keys())
	assert.Equal(t, []string{"cpus", "deploy"}, svc.Keys())

	migrated := document.AsMap(document.AsMap(out.Value("services")).Value("app"))
	assert.Equal(t, document.Number("1"), document.ParsePath("deploy/resources/limits/cpus").Resolve(migrated))
}

func TestMigrate_NilRoot(t *testing.T) {
	assert.Equal(t, 0, Migrate(nil).Len())
}
