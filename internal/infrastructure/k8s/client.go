// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package k8s

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dataverse/atlan-migration/pkg/errors"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// NewClient builds a Kubernetes client from the in-cluster config when
// running in a pod, or from KUBECONFIG (~/.kube/config by default) otherwise
func NewClient(ctx context.Context) (kubernetes.Interface, error) {

	findConfig := func() (*rest.Config, error) {
		if _, exists := os.LookupEnv("KUBERNETES_SERVICE_HOST"); exists {
			slog.DebugContext(ctx, "using in-cluster Kubernetes config")
			return rest.InClusterConfig()
		}
		kubeconfigPath := os.Getenv("KUBECONFIG")
		if kubeconfigPath == "" {
			slog.DebugContext(ctx, "using local kubeconfig")
			if home := homedir.HomeDir(); home != "" {
				kubeconfigPath = filepath.Join(home, ".kube", "config")
			}
		}
		return clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	}

	k8sConfig, errFindConfig := findConfig()
	if errFindConfig != nil {
		return nil, errors.NewServiceUnavailable("failed to find Kubernetes config", errFindConfig)
	}

	k8sClient, errNewForConfig := kubernetes.NewForConfig(k8sConfig)
	if errNewForConfig != nil {
		return nil, errors.NewServiceUnavailable("failed to create Kubernetes client", errNewForConfig)
	}

	return k8sClient, nil
}
