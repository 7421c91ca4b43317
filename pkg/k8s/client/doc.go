// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package client provides the Kubernetes client used for ConfigMap catalogs.
//
// GetKubeClient returns a client shared by every caller in the process, created
// on first use with automatic configuration discovery:
//
//  1. the KUBECONFIG environment variable
//  2. ~/.kube/config if it exists
//  3. the in-cluster service account
//
//	cs, _, err := client.GetKubeClient()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//	cm, err := cs.CoreV1().ConfigMaps("recipes").Get(ctx, "catalog", metav1.GetOptions{})
//
// ForKubeconfig and BuildKubeClient create a dedicated client for an explicit
// kubeconfig path, for example the --kubeconfig flag of the CLI.
//
// Interface aliases kubernetes.Interface so tests can substitute
// k8s.io/client-go/kubernetes/fake.
package client
