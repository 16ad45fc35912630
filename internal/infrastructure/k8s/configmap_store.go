// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package k8s

import (
	"context"
	"log/slog"

	"github.com/dataverse/atlan-migration/internal/domain/port"
	"github.com/dataverse/atlan-migration/internal/infrastructure/snapshot"
	"github.com/dataverse/atlan-migration/pkg/constants"
	"github.com/dataverse/atlan-migration/pkg/errors"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// configMapStore keeps every snapshot as a <name>.json data key of one ConfigMap
type configMapStore struct {
	k8sClient     kubernetes.Interface
	namespace     string
	configmapName string
}

// Save writes the snapshot into the ConfigMap, creating the ConfigMap when missing
func (c *configMapStore) Save(ctx context.Context, name string, data any) error {
	encoded, err := snapshot.Encode(name, data)
	if err != nil {
		return err
	}

	client := c.k8sClient.CoreV1().ConfigMaps(c.namespace)
	key := snapshot.FileName(name)

	configMap, err := client.Get(ctx, c.configmapName, metav1.GetOptions{})
	if err != nil {
		if !apierrors.IsNotFound(err) {
			return errors.NewUnexpected("failed to get ConfigMap", err)
		}

		configMap = &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{
				Name:      c.configmapName,
				Namespace: c.namespace,
				Labels: map[string]string{
					"app.kubernetes.io/managed-by": constants.ServiceName,
				},
			},
			Data: map[string]string{key: string(encoded)},
		}
		if _, errCreate := client.Create(ctx, configMap, metav1.CreateOptions{}); errCreate != nil {
			return errors.NewUnexpected("failed to create ConfigMap", errCreate)
		}

		slog.DebugContext(ctx, "created snapshot ConfigMap",
			"name", c.configmapName,
			"namespace", c.namespace,
			"key", key,
		)
		return nil
	}

	if configMap.Data == nil {
		configMap.Data = make(map[string]string)
	}
	configMap.Data[key] = string(encoded)

	if _, errUpdate := client.Update(ctx, configMap, metav1.UpdateOptions{}); errUpdate != nil {
		return errors.NewUnexpected("failed to update ConfigMap", errUpdate)
	}

	slog.DebugContext(ctx, "updated snapshot ConfigMap",
		"name", c.configmapName,
		"namespace", c.namespace,
		"key", key,
	)
	return nil
}

// Load reads the snapshot from the ConfigMap
func (c *configMapStore) Load(ctx context.Context, name string, into any) error {
	configMap, err := c.k8sClient.CoreV1().ConfigMaps(c.namespace).Get(ctx, c.configmapName, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return errors.NewNotFound("snapshot ConfigMap "+c.configmapName+" not found", err)
		}
		return errors.NewUnexpected("failed to get ConfigMap", err)
	}

	data, exists := configMap.Data[snapshot.FileName(name)]
	if !exists {
		slog.InfoContext(ctx, "snapshot not found in ConfigMap", "name", name)
		return errors.NewNotFound("snapshot " + name + " not found")
	}

	return snapshot.Decode(name, []byte(data), into)
}

// NewConfigMapStore creates a SnapshotStore backed by a ConfigMap
func NewConfigMapStore(k8sClient kubernetes.Interface, namespace, configmapName string) (port.SnapshotStore, error) {
	if k8sClient == nil {
		return nil, errors.NewUnexpected("kubernetes client not available")
	}
	if namespace == "" {
		return nil, errors.NewValidation("ConfigMap namespace is required")
	}
	if configmapName == "" {
		return nil, errors.NewValidation("ConfigMap name is required")
	}

	return &configMapStore{
		k8sClient:     k8sClient,
		namespace:     namespace,
		configmapName: configmapName,
	}, nil
}
