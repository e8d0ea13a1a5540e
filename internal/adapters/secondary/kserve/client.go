package kserve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	log "github.com/sirupsen/logrus"

	"model-serving-service/internal/config"
	"model-serving-service/internal/core/domain"
	output "model-serving-service/internal/core/ports/output"
)

var inferenceServiceGVR = schema.GroupVersionResource{
	Group:    "serving.kserve.io",
	Version:  "v1beta1",
	Resource: "inferenceservices",
}

var invalidNameChars = regexp.MustCompile(`[^a-z0-9]+`)

type kserveLocator struct {
	client       dynamic.Interface
	enabled      bool
	defaultNS    string
	nameTemplate string
}

// NewKServeLocator creates a ServingLocator backed by KServe InferenceServices
func NewKServeLocator(cfg *config.KubernetesConfig) (output.ServingLocator, error) {
	if !cfg.Enabled {
		return &kserveLocator{enabled: false}, nil
	}

	var restCfg *rest.Config
	var err error

	if cfg.InCluster {
		restCfg, err = rest.InClusterConfig()
	} else if cfg.KubeConfigPath != "" {
		restCfg, err = clientcmd.BuildConfigFromFlags("", cfg.KubeConfigPath)
	} else {
		// Try default kubeconfig location
		home, _ := os.UserHomeDir()
		kubeconfig := filepath.Join(home, ".kube", "config")
		restCfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
	}
	if err != nil {
		return nil, fmt.Errorf("build k8s config: %w", err)
	}

	client, err := dynamic.NewForConfig(restCfg)
	if err != nil {
		return nil, fmt.Errorf("create dynamic client: %w", err)
	}

	return NewKServeLocatorWithClient(client, cfg.DefaultNS, cfg.ServiceName), nil
}

// NewKServeLocatorWithClient wires an existing dynamic client.
func NewKServeLocatorWithClient(client dynamic.Interface, namespace, nameTemplate string) output.ServingLocator {
	if namespace == "" {
		namespace = "model-serving"
	}
	if nameTemplate == "" {
		nameTemplate = "{name}-v{version}"
	}
	return &kserveLocator{
		client:       client,
		enabled:      true,
		defaultNS:    namespace,
		nameTemplate: nameTemplate,
	}
}

func (c *kserveLocator) IsAvailable() bool {
	return c.enabled
}

// ServiceName renders the InferenceService name for a version as a DNS-1123 label.
func (c *kserveLocator) ServiceName(version *domain.ModelVersion) string {
	name := strings.NewReplacer("{name}", version.Name, "{version}", version.Version).Replace(c.nameTemplate)
	name = invalidNameChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(name, "-")
}

func (c *kserveLocator) Locate(ctx context.Context, version *domain.ModelVersion) (*output.ServingEndpoint, error) {
	if !c.enabled {
		return nil, fmt.Errorf("%w: kubernetes integration disabled", domain.ErrServingNotReady)
	}

	name := c.ServiceName(version)
	obj, err := c.client.Resource(inferenceServiceGVR).
		Namespace(c.defaultNS).
		Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("get kserve inferenceservice %s/%s: %w", c.defaultNS, name, err)
	}

	ep := parseStatus(obj)
	ep.ModelName = name

	log.WithFields(log.Fields{
		"isvc":      name,
		"namespace": c.defaultNS,
		"url":       ep.URL,
		"ready":     ep.Ready,
	}).Debug("inference service located")
	return ep, nil
}

func parseStatus(obj *unstructured.Unstructured) *output.ServingEndpoint {
	ep := &output.ServingEndpoint{}

	statusMap, found, _ := unstructured.NestedMap(obj.Object, "status")
	if !found {
		return ep
	}

	ep.URL, _, _ = unstructured.NestedString(statusMap, "url")

	// Check conditions for ready state
	conditions, found, _ := unstructured.NestedSlice(statusMap, "conditions")
	if found {
		for _, cond := range conditions {
			condMap, ok := cond.(map[string]interface{})
			if !ok {
				continue
			}
			condType, _ := condMap["type"].(string)
			condStatus, _ := condMap["status"].(string)

			if condType == "Ready" {
				ep.Ready = condStatus == "True"
				break
			}
		}
	}

	return ep
}

// Ensure interface compliance
var _ output.ServingLocator = (*kserveLocator)(nil)
